package toolbox

import (
	"fmt"
	"strings"
)

// Neuron holds one weight per input plus a trailing bias weight, which is
// evaluated against a constant input of 1.0.
//
// The weight vector is treated as a value: SetWeights copies its argument in
// and Weights copies it out, so callers never alias a neuron's storage.
type Neuron struct {
	activation ActivationType

	// w has length numInputs+1 for the lifetime of the neuron.  w[numInputs]
	// is the bias.
	w []float32
}

// NewNeuron allocates a neuron that accepts numInputs inputs, drawing its
// numInputs+1 starting weights from init.
func NewNeuron(numInputs int, activation ActivationType, init Initializer) *Neuron {
	if numInputs < 0 {
		panic(fmt.Sprintf("invalid input count: %d", numInputs))
	}
	if !activation.Valid() {
		panic(fmt.Sprintf("invalid activation: %v", activation))
	}

	n := &Neuron{
		activation: activation,
		w:          make([]float32, numInputs+1),
	}
	for i := range n.w {
		n.w[i] = float32(init.Rand())
	}
	return n
}

// NumInputs is the input vector length Evaluate expects.
func (n *Neuron) NumInputs() int {
	return len(n.w) - 1
}

// NumWeights is the length of the weight vector, bias included.
func (n *Neuron) NumWeights() int {
	return len(n.w)
}

// Evaluate computes activation(bias + Σ w[i]*x[i]).
func (n *Neuron) Evaluate(x []float32) (float32, error) {
	if len(x)+1 != len(n.w) {
		return 0, fmt.Errorf("%w: neuron takes %d inputs, got %d", ErrInputSizeMismatch, len(n.w)-1, len(x))
	}

	z := weightedSum(n.w, x) + n.w[len(x)]*1.0
	return n.activation.Apply(z), nil
}

// Weights returns a copy of the weight vector, bias last.
func (n *Neuron) Weights() []float32 {
	out := make([]float32, len(n.w))
	copy(out, n.w)
	return out
}

// SetWeights replaces the whole weight vector.  On a length mismatch the
// neuron is left untouched.
func (n *Neuron) SetWeights(w []float32) error {
	if len(w) != len(n.w) {
		return fmt.Errorf("%w: neuron has %d weights, got %d", ErrWeightLengthMismatch, len(n.w), len(w))
	}
	copy(n.w, w)
	return nil
}

// appendWeights appends the weight vector to dst without an intermediate copy.
func (n *Neuron) appendWeights(dst []float32) []float32 {
	return append(dst, n.w...)
}

func (n *Neuron) String() string {
	var sb strings.Builder
	sb.WriteString("Neuron [weights=")
	for i, w := range n.w {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", w)
	}
	sb.WriteString("]")
	return sb.String()
}
