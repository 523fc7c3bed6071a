package toolbox

import (
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var demoTopology = Topology{
	Inputs:                2,
	Outputs:               2,
	HiddenLayers:          1,
	NeuronsPerHiddenLayer: 10,
}

func mustNetwork(t *testing.T, topo Topology, seed uint64) *Network {
	t.Helper()
	net, err := NewNetwork(topo, Sigmoid, UniformInitializer(seed))
	require.NoError(t, err)
	return net
}

func TestNewNetworkInvalidTopology(t *testing.T) {
	for _, topo := range []Topology{
		{},
		{Inputs: 0, Outputs: 1, HiddenLayers: 1, NeuronsPerHiddenLayer: 1},
		{Inputs: 1, Outputs: 0, HiddenLayers: 1, NeuronsPerHiddenLayer: 1},
		{Inputs: 1, Outputs: 1, HiddenLayers: 0, NeuronsPerHiddenLayer: 1},
		{Inputs: 1, Outputs: 1, HiddenLayers: 1, NeuronsPerHiddenLayer: -3},
	} {
		_, err := NewNetwork(topo, Sigmoid, ConstantInitializer(0))
		require.ErrorIs(t, err, ErrInvalidTopology, "topology %+v", topo)
	}
}

func TestNewNetworkUnknownActivation(t *testing.T) {
	for _, activation := range []ActivationType{ActivationType(-1), ActivationType(9)} {
		net, err := NewNetwork(demoTopology, activation, ConstantInitializer(0))
		require.ErrorIs(t, err, ErrUnknownActivation, "activation %v", activation)
		require.Nil(t, net)
	}
}

func TestNetworkNeuronSizing(t *testing.T) {
	topo := Topology{Inputs: 3, Outputs: 2, HiddenLayers: 3, NeuronsPerHiddenLayer: 4}
	net := mustNetwork(t, topo, 1)

	if len(net.hiddenLayers) != 3 {
		t.Fatalf("got %d hidden layers, want 3", len(net.hiddenLayers))
	}
	for l, layer := range net.hiddenLayers {
		if len(layer) != 4 {
			t.Fatalf("hidden layer %d has %d neurons, want 4", l, len(layer))
		}
		for i, n := range layer {
			if n.NumWeights() != topo.Inputs+1 {
				t.Errorf("hidden layer %d neuron %d has %d weights, want %d", l, i, n.NumWeights(), topo.Inputs+1)
			}
		}
	}

	if len(net.outputLayer) != 2 {
		t.Fatalf("got %d output neurons, want 2", len(net.outputLayer))
	}
	for i, n := range net.outputLayer {
		if n.NumWeights() != topo.NeuronsPerHiddenLayer+1 {
			t.Errorf("output neuron %d has %d weights, want %d", i, n.NumWeights(), topo.NeuronsPerHiddenLayer+1)
		}
	}
}

func TestNetworkEvaluateOutputLength(t *testing.T) {
	for _, topo := range []Topology{
		demoTopology,
		{Inputs: 1, Outputs: 1, HiddenLayers: 1, NeuronsPerHiddenLayer: 1},
		{Inputs: 5, Outputs: 3, HiddenLayers: 1, NeuronsPerHiddenLayer: 7},
		{Inputs: 4, Outputs: 9, HiddenLayers: 1, NeuronsPerHiddenLayer: 2},
	} {
		net := mustNetwork(t, topo, 99)
		x := make([]float32, topo.Inputs)
		for i := range x {
			x[i] = float32(i) - 0.5
		}

		out, err := net.Evaluate(x)
		require.NoError(t, err)
		if len(out) != topo.Outputs {
			t.Errorf("topology %+v: got %d outputs, want %d", topo, len(out), topo.Outputs)
		}
	}
}

func TestNetworkEvaluateDemoInput(t *testing.T) {
	net := mustNetwork(t, demoTopology, 12345)

	out, err := net.EvaluateValues(0, -1)
	require.NoError(t, err)
	if len(out) != 2 {
		t.Fatalf("got %d outputs, want 2", len(out))
	}
	for i, v := range out {
		// Sigmoid outputs are strictly inside (0, 1).
		if !(v > 0 && v < 1) {
			t.Errorf("output %d = %v, want a value in (0, 1)", i, v)
		}
	}
}

func TestNetworkEvaluatePinnedWeights(t *testing.T) {
	net := mustNetwork(t, demoTopology, 12345)

	flat := make([]float32, net.TotalWeightCount())
	for i := range flat {
		flat[i] = 0.1
	}
	require.NoError(t, net.ImportWeights(flat))

	// Each hidden neuron: sigmoid(0.1*0 + 0.1*-1 + 0.1) = sigmoid(0) = 0.5.
	// Each output neuron: sigmoid(10*0.1*0.5 + 0.1) = sigmoid(0.6).
	want := float32(1 / (1 + math32.Exp(-0.6)))

	for run := 0; run < 3; run++ {
		out, err := net.EvaluateValues(0, -1)
		require.NoError(t, err)
		for i, v := range out {
			if math32.Abs(v-want) > 1e-6 {
				t.Errorf("run %d output %d = %v, want %v", run, i, v, want)
			}
		}
	}
}

func TestNetworkEvaluateHandComputed(t *testing.T) {
	topo := Topology{Inputs: 2, Outputs: 1, HiddenLayers: 1, NeuronsPerHiddenLayer: 2}
	net, err := NewNetwork(topo, Linear, ConstantInitializer(0))
	require.NoError(t, err)

	require.NoError(t, net.ImportWeights([]float32{
		1, 2, 0.5, // hidden 0: x0 + 2*x1 + 0.5
		-1, 1, 0, // hidden 1: -x0 + x1
		3, -2, 1, // output: 3*h0 - 2*h1 + 1
	}))

	out, err := net.EvaluateValues(1, 2)
	require.NoError(t, err)

	// h0 = 5.5, h1 = 1, out = 16.5 - 2 + 1
	if diff := cmp.Diff(out, []float32{15.5}); diff != "" {
		t.Fatalf("Wrong output; diff (-got +want)\n%s", diff)
	}
}

func TestNetworkEvaluateInputSizeMismatch(t *testing.T) {
	net := mustNetwork(t, demoTopology, 1)

	_, err := net.Evaluate([]float32{1})
	require.ErrorIs(t, err, ErrInputSizeMismatch)

	_, err = net.Evaluate([]float32{1, 2, 3})
	require.ErrorIs(t, err, ErrInputSizeMismatch)
}

func TestNetworkEvaluateIgnoresDeeperHiddenLayers(t *testing.T) {
	topo := Topology{Inputs: 3, Outputs: 2, HiddenLayers: 3, NeuronsPerHiddenLayer: 4}
	net := mustNetwork(t, topo, 5)
	x := []float32{0.25, -0.5, 1}

	before, err := net.Evaluate(x)
	require.NoError(t, err)

	for _, layer := range net.hiddenLayers[1:] {
		for _, n := range layer {
			w := make([]float32, n.NumWeights())
			for i := range w {
				w[i] = 1000
			}
			require.NoError(t, n.SetWeights(w))
		}
	}

	after, err := net.Evaluate(x)
	require.NoError(t, err)

	if diff := cmp.Diff(after, before); diff != "" {
		t.Fatalf("Output depends on hidden layers past the first; diff (-got +want)\n%s", diff)
	}
}

func TestNetworkTotalWeightCount(t *testing.T) {
	for _, topo := range []Topology{
		demoTopology,
		{Inputs: 3, Outputs: 2, HiddenLayers: 3, NeuronsPerHiddenLayer: 4},
		{Inputs: 1, Outputs: 1, HiddenLayers: 1, NeuronsPerHiddenLayer: 1},
	} {
		net := mustNetwork(t, topo, 3)

		sum := 0
		for _, layer := range net.hiddenLayers {
			for _, n := range layer {
				sum += n.NumWeights()
			}
		}
		for _, n := range net.outputLayer {
			sum += n.NumWeights()
		}

		if got := net.TotalWeightCount(); got != sum {
			t.Errorf("topology %+v: TotalWeightCount() = %d, want %d", topo, got, sum)
		}
		if got := topo.TotalWeightCount(); got != sum {
			t.Errorf("topology %+v: Topology.TotalWeightCount() = %d, want %d", topo, got, sum)
		}
		for i := 0; i < 3; i++ {
			if got := len(net.ExportWeights()); got != sum {
				t.Errorf("topology %+v: len(ExportWeights()) = %d, want %d", topo, got, sum)
			}
		}
	}

	// 10*(2+1) + 2*(10+1)
	if got := demoTopology.TotalWeightCount(); got != 52 {
		t.Errorf("demo topology has %d weights, want 52", got)
	}
}

func TestNetworkExportOrder(t *testing.T) {
	topo := Topology{Inputs: 1, Outputs: 2, HiddenLayers: 2, NeuronsPerHiddenLayer: 2}
	net := mustNetwork(t, topo, 8)

	require.NoError(t, net.hiddenLayers[0][0].SetWeights([]float32{1, 2}))
	require.NoError(t, net.hiddenLayers[0][1].SetWeights([]float32{3, 4}))
	require.NoError(t, net.hiddenLayers[1][0].SetWeights([]float32{5, 6}))
	require.NoError(t, net.hiddenLayers[1][1].SetWeights([]float32{7, 8}))
	require.NoError(t, net.outputLayer[0].SetWeights([]float32{9, 10, 11}))
	require.NoError(t, net.outputLayer[1].SetWeights([]float32{12, 13, 14}))

	want := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}
	if diff := cmp.Diff(net.ExportWeights(), want); diff != "" {
		t.Fatalf("Wrong export order; diff (-got +want)\n%s", diff)
	}
}

func TestNetworkImportExportRoundTrip(t *testing.T) {
	topo := Topology{Inputs: 3, Outputs: 2, HiddenLayers: 2, NeuronsPerHiddenLayer: 5}
	net := mustNetwork(t, topo, 77)

	neuronWeights := func() [][]float32 {
		var all [][]float32
		net.neurons(func(n *Neuron) error {
			all = append(all, n.Weights())
			return nil
		})
		return all
	}

	before := neuronWeights()
	require.NoError(t, net.ImportWeights(net.ExportWeights()))

	if diff := cmp.Diff(neuronWeights(), before); diff != "" {
		t.Fatalf("Round trip changed weights; diff (-got +want)\n%s", diff)
	}
}

func TestNetworkTransplant(t *testing.T) {
	a := mustNetwork(t, demoTopology, 1)
	b := mustNetwork(t, demoTopology, 2)

	require.NoError(t, b.ImportWeights(a.ExportWeights()))

	if diff := cmp.Diff(b.ExportWeights(), a.ExportWeights()); diff != "" {
		t.Fatalf("Transplanted weights differ; diff (-got +want)\n%s", diff)
	}

	for _, x := range [][]float32{{0, -1}, {1, 1}, {-0.3, 0.7}, {5, -5}} {
		outA, err := a.Evaluate(x)
		require.NoError(t, err)
		outB, err := b.Evaluate(x)
		require.NoError(t, err)

		if diff := cmp.Diff(outB, outA); diff != "" {
			t.Errorf("input %v: outputs differ after transplant; diff (-got +want)\n%s", x, diff)
		}
	}
}

func TestNetworkImportInsufficientWeights(t *testing.T) {
	net := mustNetwork(t, demoTopology, 4)
	before := net.ExportWeights()

	short := make([]float32, net.TotalWeightCount()-1)
	require.ErrorIs(t, net.ImportWeights(short), ErrInsufficientWeights)
	require.ErrorIs(t, net.ImportWeights(nil), ErrInsufficientWeights)

	if diff := cmp.Diff(net.ExportWeights(), before); diff != "" {
		t.Fatalf("Rejected import modified weights; diff (-got +want)\n%s", diff)
	}
}

func TestNetworkImportIgnoresTrailingValues(t *testing.T) {
	net := mustNetwork(t, demoTopology, 4)
	total := net.TotalWeightCount()

	long := make([]float32, total+5)
	for i := range long {
		long[i] = float32(i)
	}
	require.NoError(t, net.ImportWeights(long))

	if diff := cmp.Diff(net.ExportWeights(), long[:total]); diff != "" {
		t.Fatalf("Wrong weights after long import; diff (-got +want)\n%s", diff)
	}
}

func TestNetworkSameSeedSameWeights(t *testing.T) {
	a := mustNetwork(t, demoTopology, 12345)
	b := mustNetwork(t, demoTopology, 12345)

	if diff := cmp.Diff(a.ExportWeights(), b.ExportWeights()); diff != "" {
		t.Fatalf("Same seed produced different weights; diff (-a +b)\n%s", diff)
	}
}

func TestNetworkString(t *testing.T) {
	topo := Topology{Inputs: 2, Outputs: 3, HiddenLayers: 2, NeuronsPerHiddenLayer: 4}
	net := mustNetwork(t, topo, 6)

	s := net.String()
	if got := strings.Count(s, "Neuron ["); got != 2*4+3 {
		t.Errorf("String() lists %d neurons, want %d:\n%s", got, 2*4+3, s)
	}
	for _, want := range []string{"Hidden Layers", "Layer 1", "Output Layer"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() is missing %q:\n%s", want, s)
		}
	}
}

func BenchmarkNetworkEvaluate(b *testing.B) {
	topo := Topology{Inputs: 64, Outputs: 8, HiddenLayers: 1, NeuronsPerHiddenLayer: 128}
	net, err := NewNetwork(topo, Sigmoid, UniformInitializer(12345))
	if err != nil {
		b.Fatal(err)
	}
	x := make([]float32, topo.Inputs)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := net.Evaluate(x); err != nil {
			b.Fatal(err)
		}
	}
}
