package toolbox

import (
	"fmt"
	"strings"
)

// Topology fixes every array size in a network for its lifetime.
type Topology struct {
	Inputs                int
	Outputs               int
	HiddenLayers          int
	NeuronsPerHiddenLayer int
}

// Validate returns ErrInvalidTopology unless every size is positive.
func (t Topology) Validate() error {
	if t.Inputs <= 0 || t.Outputs <= 0 || t.HiddenLayers <= 0 || t.NeuronsPerHiddenLayer <= 0 {
		return fmt.Errorf("%w: %+v (all sizes must be positive)", ErrInvalidTopology, t)
	}
	return nil
}

// TotalWeightCount is the length of the flat weight vector for a network with
// this topology.  External optimizers can use it to size their genomes without
// building a network.
func (t Topology) TotalWeightCount() int {
	// Every hidden layer is sized against the raw inputs; see Network.Evaluate.
	return t.HiddenLayers*t.NeuronsPerHiddenLayer*(t.Inputs+1) + t.Outputs*(t.NeuronsPerHiddenLayer+1)
}

// Network is a feed-forward network with uniform-width hidden layers and one
// output layer.
//
// The flat weight vector used by ImportWeights and ExportWeights lists the
// weights of every hidden-layer neuron (layers in order, neurons in order,
// each neuron's input weights followed by its bias), then every output neuron
// in order.
//
// A Network is not safe for concurrent mutation.  Callers must serialize
// ImportWeights against Evaluate themselves.
type Network struct {
	topology   Topology
	activation ActivationType

	hiddenLayers [][]*Neuron
	outputLayer  []*Neuron
}

// NewNetwork allocates every neuron for topo and draws its starting weights
// from init.
//
// Each hidden layer's neurons take topo.Inputs inputs, and each output neuron
// takes topo.NeuronsPerHiddenLayer inputs.
func NewNetwork(topo Topology, activation ActivationType, init Initializer) (*Network, error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	if !activation.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownActivation, activation)
	}

	net := &Network{
		topology:     topo,
		activation:   activation,
		hiddenLayers: make([][]*Neuron, topo.HiddenLayers),
		outputLayer:  make([]*Neuron, topo.Outputs),
	}

	for l := 0; l < topo.HiddenLayers; l++ {
		net.hiddenLayers[l] = make([]*Neuron, topo.NeuronsPerHiddenLayer)
		for i := 0; i < topo.NeuronsPerHiddenLayer; i++ {
			net.hiddenLayers[l][i] = NewNeuron(topo.Inputs, activation, init)
		}
	}

	for i := 0; i < topo.Outputs; i++ {
		net.outputLayer[i] = NewNeuron(topo.NeuronsPerHiddenLayer, activation, init)
	}

	return net, nil
}

func (net *Network) Topology() Topology {
	return net.topology
}

func (net *Network) Activation() ActivationType {
	return net.activation
}

// Evaluate runs a forward pass.  x must have Topology().Inputs elements; the
// result always has Topology().Outputs elements.
//
// Only the first hidden layer is evaluated.  Any further hidden layers are
// carried in the flat weight vector but are not consulted here.
func (net *Network) Evaluate(x []float32) ([]float32, error) {
	hidden := make([]float32, len(net.hiddenLayers[0]))
	for i, neuron := range net.hiddenLayers[0] {
		a, err := neuron.Evaluate(x)
		if err != nil {
			return nil, fmt.Errorf("while evaluating hidden layer 0 neuron %d: %w", i, err)
		}
		hidden[i] = a
	}

	out := make([]float32, len(net.outputLayer))
	for i, neuron := range net.outputLayer {
		a, err := neuron.Evaluate(hidden)
		if err != nil {
			return nil, fmt.Errorf("while evaluating output neuron %d: %w", i, err)
		}
		out[i] = a
	}

	return out, nil
}

// EvaluateValues is Evaluate with the inputs spelled out as arguments.
func (net *Network) EvaluateValues(x ...float32) ([]float32, error) {
	return net.Evaluate(x)
}

// neurons visits every neuron in flat-vector order.
func (net *Network) neurons(visit func(*Neuron) error) error {
	for _, layer := range net.hiddenLayers {
		for _, neuron := range layer {
			if err := visit(neuron); err != nil {
				return err
			}
		}
	}
	for _, neuron := range net.outputLayer {
		if err := visit(neuron); err != nil {
			return err
		}
	}
	return nil
}

// TotalWeightCount is the sum of every neuron's weight count.
func (net *Network) TotalWeightCount() int {
	total := 0
	net.neurons(func(n *Neuron) error {
		total += n.NumWeights()
		return nil
	})
	return total
}

// ImportWeights overwrites every weight in the network from flat, consuming
// values in flat-vector order.  Values past TotalWeightCount() are ignored.
//
// If flat is too short, ErrInsufficientWeights is returned and no neuron is
// modified.
func (net *Network) ImportWeights(flat []float32) error {
	want := net.TotalWeightCount()
	if len(flat) < want {
		return fmt.Errorf("%w: network has %d weights, got %d", ErrInsufficientWeights, want, len(flat))
	}

	cursor := 0
	return net.neurons(func(n *Neuron) error {
		end := cursor + n.NumWeights()
		if err := n.SetWeights(flat[cursor:end]); err != nil {
			return fmt.Errorf("while importing weights [%d, %d): %w", cursor, end, err)
		}
		cursor = end
		return nil
	})
}

// ExportWeights returns a new flat weight vector of length TotalWeightCount().
// Passing it back to ImportWeights leaves the network unchanged.
func (net *Network) ExportWeights() []float32 {
	flat := make([]float32, 0, net.TotalWeightCount())
	net.neurons(func(n *Neuron) error {
		flat = n.appendWeights(flat)
		return nil
	})
	return flat
}

func (net *Network) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Network [topology=%+v activation=%v\n", net.topology, net.activation)
	sb.WriteString("  Hidden Layers [")
	for l, layer := range net.hiddenLayers {
		fmt.Fprintf(&sb, "\n    Layer %d [", l)
		for _, neuron := range layer {
			fmt.Fprintf(&sb, "\n      %v", neuron)
		}
		sb.WriteString("\n    ]")
	}
	sb.WriteString("\n  ]\n  Output Layer [")
	for _, neuron := range net.outputLayer {
		fmt.Fprintf(&sb, "\n    %v", neuron)
	}
	sb.WriteString("\n  ]\n]")
	return sb.String()
}
