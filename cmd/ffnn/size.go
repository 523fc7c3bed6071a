package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/subcommands"
)

type SizeCommand struct {
	topologyFlags

	out io.Writer
}

var _ subcommands.Command = (*SizeCommand)(nil)

func (*SizeCommand) Name() string {
	return "size"
}

func (*SizeCommand) Synopsis() string {
	return "Print the length of the flat weight vector for a topology"
}

func (*SizeCommand) Usage() string {
	return ``
}

func (c *SizeCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.executeErr(ctx); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *SizeCommand) executeErr(ctx context.Context) error {
	topo := c.topology()
	if err := topo.Validate(); err != nil {
		return err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, topo.TotalWeightCount())
	return nil
}
