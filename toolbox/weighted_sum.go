//go:build !(ffnnasm && amd64)

package toolbox

// weightedSum returns Σ w[i]*x[i] over len(x) elements.  Callers guarantee
// len(w) >= len(x); any extra weights (the bias slot) are not read.
func weightedSum(w []float32, x []float32) float32 {
	w = w[:len(x)] // bounds-check elimination hint
	var sum float32
	for i := range x {
		sum += w[i] * x[i]
	}
	return sum
}
