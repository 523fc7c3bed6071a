package toolbox

import (
	"fmt"

	"github.com/chewxy/math32"
)

// ActivationType selects the function applied to a neuron's weighted sum.  A
// network applies the same activation to every neuron.
type ActivationType int

const (
	Sigmoid ActivationType = iota
	Tanh
	ReLU
	Linear
)

func (a ActivationType) String() string {
	switch a {
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("ActivationType(%d)", int(a))
	}
}

// ParseActivation maps a flag value back to an ActivationType.
func ParseActivation(s string) (ActivationType, error) {
	for _, a := range []ActivationType{Sigmoid, Tanh, ReLU, Linear} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownActivation, s)
}

// Valid reports whether a is one of the declared activations.
func (a ActivationType) Valid() bool {
	return a >= Sigmoid && a <= Linear
}

// Apply evaluates the activation function at z.
func (a ActivationType) Apply(z float32) float32 {
	switch a {
	case Sigmoid:
		return 1 / (1 + math32.Exp(-z))
	case Tanh:
		return math32.Tanh(z)
	case ReLU:
		if z <= 0 {
			return 0
		}
		return z
	case Linear:
		return z
	default:
		panic("unhandled activation function")
	}
}
