package main

import (
	"flag"
	"fmt"

	"github.com/ahmedtd/ffnn/toolbox"
)

// topologyFlags holds the network shape shared by every command.
type topologyFlags struct {
	inputs          int
	outputs         int
	hiddenLayers    int
	neuronsPerLayer int
	activation      string
	seed            uint64
}

func (tf *topologyFlags) SetFlags(f *flag.FlagSet) {
	f.IntVar(&tf.inputs, "inputs", 2, "Number of network inputs")
	f.IntVar(&tf.outputs, "outputs", 2, "Number of network outputs")
	f.IntVar(&tf.hiddenLayers, "hidden-layers", 1, "Number of hidden layers (only the first is evaluated)")
	f.IntVar(&tf.neuronsPerLayer, "neurons-per-layer", 10, "Number of neurons in each hidden layer")
	f.StringVar(&tf.activation, "activation", toolbox.Sigmoid.String(), "Activation function: sigmoid, tanh, relu, or linear")
	f.Uint64Var(&tf.seed, "seed", 12345, "Seed for the starting weights")
}

func (tf *topologyFlags) topology() toolbox.Topology {
	return toolbox.Topology{
		Inputs:                tf.inputs,
		Outputs:               tf.outputs,
		HiddenLayers:          tf.hiddenLayers,
		NeuronsPerHiddenLayer: tf.neuronsPerLayer,
	}
}

// network builds a network from the flags, seeded with seed.
func (tf *topologyFlags) network(seed uint64) (*toolbox.Network, error) {
	activation, err := toolbox.ParseActivation(tf.activation)
	if err != nil {
		return nil, fmt.Errorf("while parsing --activation: %w", err)
	}

	net, err := toolbox.NewNetwork(tf.topology(), activation, toolbox.UniformInitializer(seed))
	if err != nil {
		return nil, fmt.Errorf("while building network: %w", err)
	}
	return net, nil
}
