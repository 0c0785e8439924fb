// Package cubic finds the real roots of degree-three polynomials via the
// eigenvalues of the companion matrix.
package cubic

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// imagTol is the largest imaginary magnitude at which a companion
// eigenvalue still counts as a real root. The real Schur decomposition
// reports genuinely real eigenvalues with an imaginary part of exactly
// zero, so the tolerance only matters for borderline conjugate pairs.
const imagTol = 1e-12

// RealRoots returns the real roots of
//
//	c[0] + c[1]*x + c[2]*x^2 + c[3]*x^3 = 0
//
// in the order the eigensolver reports them. The result holds between zero
// and three roots; it is nil when the leading coefficient is too small to
// form a finite companion matrix or the decomposition fails.
func RealRoots(c [4]float64) []float64 {
	a0 := c[0] / c[3]
	a1 := c[1] / c[3]
	a2 := c[2] / c[3]

	if !isFinite(a0) || !isFinite(a1) || !isFinite(a2) {
		return nil
	}

	companion := mat.NewDense(3, 3, []float64{
		0, 0, -a0,
		1, 0, -a1,
		0, 1, -a2,
	})

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return nil
	}

	var roots []float64

	for _, v := range eig.Values(nil) {
		if math.Abs(imag(v)) <= imagTol {
			roots = append(roots, real(v))
		}
	}

	return roots
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
