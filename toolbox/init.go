package toolbox

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initializer produces the starting value of each weight.  The distributions
// in gonum.org/v1/gonum/stat/distuv satisfy it directly.
type Initializer interface {
	Rand() float64
}

// UniformInitializer draws weights uniformly from [-1, 1).  The same seed
// always yields the same sequence of weights.
func UniformInitializer(seed uint64) Initializer {
	return distuv.Uniform{
		Min: -1,
		Max: 1,
		Src: rand.NewSource(seed),
	}
}

// NormalInitializer draws weights from N(0, 0.1^2).
func NormalInitializer(seed uint64) Initializer {
	return distuv.Normal{
		Mu:    0,
		Sigma: 0.1,
		Src:   rand.NewSource(seed),
	}
}

type constantInitializer float64

func (c constantInitializer) Rand() float64 {
	return float64(c)
}

// ConstantInitializer sets every weight to v.
func ConstantInitializer(v float32) Initializer {
	return constantInitializer(v)
}
