// Command ffnn builds, inspects, and evaluates feed-forward networks whose
// weights are exchanged as a single flat vector.
//
// To size an optimizer genome: `go run ./cmd/ffnn size --inputs=2 --outputs=2 --hidden-layers=1 --neurons-per-layer=10`
//
// To write random starting weights: `go run ./cmd/ffnn init --seed=12345 --out=weights.npy`
//
// To evaluate: `go run ./cmd/ffnn eval --weights=weights.npy --input=0,-1`
//
// To run the transplant demonstration: `go run ./cmd/ffnn demo`
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&SizeCommand{}, "")
	subcommands.Register(&InitCommand{}, "")
	subcommands.Register(&EvalCommand{}, "")
	subcommands.Register(&DemoCommand{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
