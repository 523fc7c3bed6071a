package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
)

type EvalCommand struct {
	topologyFlags

	weightsFile string
	input       string
	inputsFile  string

	out io.Writer
}

var _ subcommands.Command = (*EvalCommand)(nil)

func (*EvalCommand) Name() string {
	return "eval"
}

func (*EvalCommand) Synopsis() string {
	return "Evaluate the network on one or more inputs"
}

func (*EvalCommand) Usage() string {
	return ``
}

func (c *EvalCommand) SetFlags(f *flag.FlagSet) {
	c.topologyFlags.SetFlags(f)
	f.StringVar(&c.weightsFile, "weights", "", "Path to a flat weight vector (.npy or .safetensors); random seeded weights if empty")
	f.StringVar(&c.input, "input", "", "Comma-separated input values, e.g. 0,-1")
	f.StringVar(&c.inputsFile, "inputs-file", "", "Path to a 2-D float32 .npy array with one input per row")
}

func (c *EvalCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.executeErr(ctx); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *EvalCommand) executeErr(ctx context.Context) error {
	net, err := c.network(c.seed)
	if err != nil {
		return err
	}

	if c.weightsFile != "" {
		flat, err := readWeightFile(c.weightsFile)
		if err != nil {
			return fmt.Errorf("while loading weights: %w", err)
		}
		if err := net.ImportWeights(flat); err != nil {
			return fmt.Errorf("while importing weights: %w", err)
		}
	}

	var xs [][]float32
	switch {
	case c.inputsFile != "":
		xs, err = readInputRows(c.inputsFile)
		if err != nil {
			return fmt.Errorf("while loading inputs: %w", err)
		}
	case c.input != "":
		x, err := parseInput(c.input)
		if err != nil {
			return fmt.Errorf("while parsing --input: %w", err)
		}
		xs = append(xs, x)
	default:
		return fmt.Errorf("one of --input or --inputs-file is required")
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	for k, x := range xs {
		pred, err := net.Evaluate(x)
		if err != nil {
			return fmt.Errorf("while evaluating input %d: %w", k, err)
		}
		fmt.Fprintln(out, formatVector(pred))
	}

	return nil
}

func parseInput(s string) ([]float32, error) {
	fields := strings.Split(s, ",")
	x := make([]float32, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return nil, err
		}
		x[i] = float32(v)
	}
	return x, nil
}

func formatVector(v []float32) string {
	fields := make([]string, len(v))
	for i := range v {
		fields[i] = strconv.FormatFloat(float64(v[i]), 'g', -1, 32)
	}
	return strings.Join(fields, ",")
}
