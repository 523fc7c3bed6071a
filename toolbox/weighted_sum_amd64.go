//go:build ffnnasm && amd64

package toolbox

//go:generate go run ./asm-generators/weighted-sum -out weighted_sum_amd64.s -stubs weighted_sum_stub_amd64.go -pkg toolbox

// The ffnnasm build is experimental.  weighted_sum_amd64.s and its stub file
// are not checked in, so this file does not build until
// `go generate -tags=ffnnasm ./toolbox/` has produced them, and the default
// build and test run never exercise it.  Once generated,
// `go test -tags=ffnnasm ./toolbox/` runs TestWeightedSumAgreesWithNaive
// against the kernel.

// weightedSum returns Σ w[i]*x[i] over len(x) elements using the AVX2 kernel.
func weightedSum(w []float32, x []float32) float32 {
	if len(w) < len(x) {
		panic("weight vector shorter than input")
	}
	if len(x) == 0 {
		return 0
	}
	return weightedSumKernel(len(x), w, x)
}
