package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"
)

type InitCommand struct {
	topologyFlags

	outputWeightFile string
}

var _ subcommands.Command = (*InitCommand)(nil)

func (*InitCommand) Name() string {
	return "init"
}

func (*InitCommand) Synopsis() string {
	return "Write the starting weights of a seeded network"
}

func (*InitCommand) Usage() string {
	return ``
}

func (c *InitCommand) SetFlags(f *flag.FlagSet) {
	c.topologyFlags.SetFlags(f)
	f.StringVar(&c.outputWeightFile, "out", "weights.npy", "Path to write the flat weight vector (.npy or .safetensors)")
}

func (c *InitCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.executeErr(ctx); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *InitCommand) executeErr(ctx context.Context) error {
	net, err := c.network(c.seed)
	if err != nil {
		return err
	}

	flat := net.ExportWeights()
	if err := writeWeightFile(c.outputWeightFile, flat); err != nil {
		return fmt.Errorf("while writing weights: %w", err)
	}

	log.Printf("Wrote %d weights to %s", len(flat), c.outputWeightFile)
	return nil
}
