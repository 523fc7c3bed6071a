package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/google/subcommands"
)

// DemoCommand builds two networks with the same topology, transplants the
// first network's weights into the second, and checks that both then agree.
type DemoCommand struct {
	topologyFlags

	out io.Writer
}

var _ subcommands.Command = (*DemoCommand)(nil)

func (*DemoCommand) Name() string {
	return "demo"
}

func (*DemoCommand) Synopsis() string {
	return "Transplant weights between two networks and compare their outputs"
}

func (*DemoCommand) Usage() string {
	return ``
}

func (c *DemoCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.executeErr(ctx); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *DemoCommand) executeErr(ctx context.Context) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	a, err := c.network(c.seed)
	if err != nil {
		return err
	}
	b, err := c.network(c.seed + 1)
	if err != nil {
		return err
	}

	x := make([]float32, c.inputs)
	if len(x) > 1 {
		x[1] = -1
	}

	outA, err := a.Evaluate(x)
	if err != nil {
		return fmt.Errorf("while evaluating first network: %w", err)
	}
	fmt.Fprintf(out, "first network on %v: %v\n", x, outA)

	flat := a.ExportWeights()
	fmt.Fprintln(out, a)

	if err := b.ImportWeights(flat); err != nil {
		return fmt.Errorf("while importing into second network: %w", err)
	}
	fmt.Fprintln(out, b)

	outB, err := b.Evaluate(x)
	if err != nil {
		return fmt.Errorf("while evaluating second network: %w", err)
	}
	fmt.Fprintf(out, "second network on %v: %v\n", x, outB)

	if !slices.Equal(outA, outB) {
		return fmt.Errorf("outputs differ after transplant: %v != %v", outA, outB)
	}

	log.Printf("Transplanted %d weights; outputs match", len(flat))
	return nil
}
