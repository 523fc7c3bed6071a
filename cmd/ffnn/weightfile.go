package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sbinet/npyio"
)

// Weight files hold exactly one flat weight vector.  The format is chosen by
// file extension: .npy files hold a 1-D float32 array, and .safetensors files
// hold a single F32 tensor named "weights".

const safeTensorsWeightsKey = "weights"

func writeWeightFile(path string, flat []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating weight file: %w", err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".npy":
		if err := npyio.Write(f, flat); err != nil {
			return fmt.Errorf("while writing npy array: %w", err)
		}
	case ".safetensors":
		if err := writeSafeTensorsVector(f, safeTensorsWeightsKey, flat); err != nil {
			return fmt.Errorf("while writing safetensors: %w", err)
		}
	default:
		return fmt.Errorf("unsupported weight file extension %q", filepath.Ext(path))
	}

	return f.Close()
}

func readWeightFile(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("while opening weight file: %w", err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".npy":
		r, err := npyio.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("while reading npy header: %w", err)
		}
		if shape := r.Header.Descr.Shape; len(shape) != 1 {
			return nil, fmt.Errorf("wrong weight shape %v; want a 1-D vector", shape)
		}
		var flat []float32
		if err := r.Read(&flat); err != nil {
			return nil, fmt.Errorf("while reading float32 array: %w", err)
		}
		return flat, nil
	case ".safetensors":
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("while sizing weight file: %w", err)
		}
		tensors, err := readSafeTensors(f, info.Size())
		if err != nil {
			return nil, fmt.Errorf("while reading safetensors: %w", err)
		}
		t, ok := tensors[safeTensorsWeightsKey]
		if !ok {
			return nil, fmt.Errorf("no entry for %s", safeTensorsWeightsKey)
		}
		if len(t.Shape) != 1 {
			return nil, fmt.Errorf("wrong shape for %s; got %v want a 1-D vector", safeTensorsWeightsKey, t.Shape)
		}
		return t.V, nil
	default:
		return nil, fmt.Errorf("unsupported weight file extension %q", filepath.Ext(path))
	}
}

// readInputRows reads a 2-D float32 .npy array of shape (rows, width).
func readInputRows(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("while opening inputs file: %w", err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("while reading npy header: %w", err)
	}

	shape := r.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, fmt.Errorf("wrong input shape %v; want (rows, inputs)", shape)
	}

	var raw []float32
	if err := r.Read(&raw); err != nil {
		return nil, fmt.Errorf("while reading float32 array: %w", err)
	}

	rows := make([][]float32, shape[0])
	for k := range rows {
		rows[k] = raw[k*shape[1] : (k+1)*shape[1]]
	}
	return rows, nil
}

type safeTensor struct {
	V     []float32
	Shape []int
}

type safeTensorInfo struct {
	DType       string `json:"dtype"`
	Shape       []int  `json:"shape"`
	DataOffsets []int  `json:"data_offsets"`
}

// writeSafeTensorsVector writes a safetensors file holding the single 1-D
// F32 tensor v under name.
func writeSafeTensorsVector(w io.Writer, name string, v []float32) error {
	header := map[string]safeTensorInfo{
		name: {
			DType:       "F32",
			Shape:       []int{len(v)},
			DataOffsets: []int{0, len(v) * 4},
		},
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("while marshaling header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerBytes))); err != nil {
		return fmt.Errorf("while writing header length: %w", err)
	}

	if _, err := w.Write(headerBytes); err != nil {
		return fmt.Errorf("while writing header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("while writing %s values: %w", name, err)
	}

	return nil
}

// readSafeTensors reads every tensor from a safetensors file of fileSize
// bytes.  Headers and data offsets that point outside the file are rejected.
func readSafeTensors(r io.ReaderAt, fileSize int64) (map[string]safeTensor, error) {
	var lenBytes [8]byte
	if _, err := r.ReadAt(lenBytes[:], 0); err != nil {
		return nil, fmt.Errorf("while reading header length: %w", err)
	}
	headerLen := binary.LittleEndian.Uint64(lenBytes[:])
	if headerLen > uint64(fileSize-8) {
		return nil, fmt.Errorf("header length %d exceeds file size %d", headerLen, fileSize)
	}
	dataLen := fileSize - 8 - int64(headerLen)

	headerBytes := make([]byte, int(headerLen))
	if _, err := r.ReadAt(headerBytes, 8); err != nil {
		return nil, fmt.Errorf("while reading header: %w", err)
	}

	header := map[string]safeTensorInfo{}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("while reading header: %w", err)
	}

	tensors := map[string]safeTensor{}
	for k, hdr := range header {
		if hdr.DType != "F32" {
			return nil, fmt.Errorf("unsupported dtype %s", hdr.DType)
		}

		size := 1
		for _, s := range hdr.Shape {
			if s < 0 {
				return nil, fmt.Errorf("bad shape %v", hdr.Shape)
			}
			size *= s
		}
		if len(hdr.DataOffsets) != 2 {
			return nil, fmt.Errorf("bad data offsets %v for %s", hdr.DataOffsets, k)
		}
		begin, end := int64(hdr.DataOffsets[0]), int64(hdr.DataOffsets[1])
		if begin < 0 || begin > end || end > dataLen {
			return nil, fmt.Errorf("data offsets %v for %s lie outside the %d-byte data section", hdr.DataOffsets, k, dataLen)
		}
		if end-begin != int64(size)*4 {
			return nil, fmt.Errorf("data offsets %v do not match shape %v", hdr.DataOffsets, hdr.Shape)
		}

		v := make([]float32, size)
		section := io.NewSectionReader(r, 8+int64(headerLen)+begin, end-begin)
		if err := binary.Read(section, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("while reading values for %s: %w", k, err)
		}

		tensors[k] = safeTensor{V: v, Shape: hdr.Shape}
	}

	return tensors, nil
}
