// Command weighted-sum generates the AVX2 kernel behind toolbox.weightedSum.
package main

import (
	"github.com/ahmedtd/ffnn/toolbox/asm-generators/genlib"
	. "github.com/mmcloughlin/avo/build"
)

func main() {
	ConstraintExpr("ffnnasm && amd64")

	TEXT("weightedSumKernel", NOSPLIT, "func(n int, w []float32, x []float32) float32")
	Doc("weightedSumKernel returns the dot product of the first n elements of w and x.")

	n := Load(Param("n"), GP64())
	wPtr := Load(Param("w").Base(), GP64())
	xPtr := Load(Param("x").Base(), GP64())

	Comment("Dot product of w and x; the bias slot past n is never read")
	sum := genlib.GenSIMDDot2(n, wPtr, xPtr, 4)

	Store(sum, ReturnIndex(0))
	VZEROUPPER()
	RET()

	Generate()
}
