package toolbox

import "errors"

var (
	// ErrInputSizeMismatch is returned when an input vector does not have
	// exactly one fewer element than the neuron has weights.
	ErrInputSizeMismatch = errors.New("input size mismatch")

	// ErrWeightLengthMismatch is returned when SetWeights is given a vector
	// whose length differs from the neuron's fixed weight count.
	ErrWeightLengthMismatch = errors.New("weight length mismatch")

	// ErrInsufficientWeights is returned when ImportWeights is given fewer
	// values than the network's total weight count.
	ErrInsufficientWeights = errors.New("insufficient weights")

	// ErrInvalidTopology is returned by NewNetwork when any topology size is
	// not positive.
	ErrInvalidTopology = errors.New("invalid topology")

	// ErrUnknownActivation is returned by NewNetwork for an ActivationType
	// outside the declared constants.
	ErrUnknownActivation = errors.New("unknown activation")
)
