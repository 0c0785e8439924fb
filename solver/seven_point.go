package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/epigo/internal/cubic"
	"github.com/hupe1980/epigo/match"
	"github.com/hupe1980/epigo/model"
)

// epsilon is the double-precision machine epsilon. Scale factors at or
// below it cannot normalize a candidate matrix.
const epsilon = 0x1p-52

// SevenPoint estimates fundamental matrices from exactly seven
// correspondences.
//
// Seven epipolar constraints leave a two-dimensional null space over the
// nine entries of F. Intersecting that span with det(F) = 0 yields a cubic
// whose real roots, between one and three of them, each give a candidate
// matrix. Candidates are scaled so the bottom-right entry equals one; roots
// whose scale factor vanishes are skipped without failing the call.
//
// The determinant constraint is the only rank condition applied, and the
// seven rows are not screened for degenerate configurations. Callers that
// need those guarantees must layer them on top.
type SevenPoint struct{}

var _ Solver = SevenPoint{}

// SampleSize returns 7.
func (SevenPoint) SampleSize() int {
	return 7
}

// EstimateModel appends up to three fundamental matrix candidates for the
// seven sampled rows to dst. It returns false when the sample admits no
// usable solution, that is when the null-space factorization fails or the
// root count falls outside [1, 3].
func (SevenPoint) EstimateModel(set *match.Set, sample []int, dst []model.Mat3) ([]model.Mat3, bool) {
	coeffs := mat.NewDense(7, 9, nil)

	for i := 0; i < 7; i++ {
		x0, y0, x1, y1 := set.PointPair(sample[i])

		coeffs.SetRow(i, []float64{
			x1 * x0, x1 * y0, x1,
			y1 * x0, y1 * y0, y1,
			x0, y0, 1,
		})
	}

	// The null space comes from the 9x9 normal matrix rather than from a
	// decomposition of the 7x9 system itself: forming AᵀA plus a symmetric
	// eigensolve is faster than the rectangular factorization, at the cost
	// of squaring the condition number. Changing this trades speed against
	// behavior on near-degenerate samples.
	var normal mat.SymDense
	normal.SymOuterK(1, coeffs.T())

	var eig mat.EigenSym
	if ok := eig.Factorize(&normal, true); !ok {
		return dst, false
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues arrive in ascending order, so the two null-space basis
	// vectors sit in the first two columns.
	var f1, f2 [9]float64
	for i := 0; i < 9; i++ {
		f2[i] = vecs.At(i, 0)
		f1[i] = vecs.At(i, 1)
	}

	// Any solution has the form lambda*f1 + (1-lambda)*f2. Substituting
	// f1 <- f1 - f2 rewrites it as lambda*f1 + f2, and det = 0 becomes a
	// cubic in lambda.
	for i := 0; i < 9; i++ {
		f1[i] -= f2[i]
	}

	var c [4]float64

	t0 := f2[4]*f2[8] - f2[5]*f2[7]
	t1 := f2[3]*f2[8] - f2[5]*f2[6]
	t2 := f2[3]*f2[7] - f2[4]*f2[6]

	c[0] = f2[0]*t0 - f2[1]*t1 + f2[2]*t2

	c[1] = f1[0]*t0 - f1[1]*t1 + f1[2]*t2 -
		f1[3]*(f2[1]*f2[8]-f2[2]*f2[7]) +
		f1[4]*(f2[0]*f2[8]-f2[2]*f2[6]) -
		f1[5]*(f2[0]*f2[7]-f2[1]*f2[6]) +
		f1[6]*(f2[1]*f2[5]-f2[2]*f2[4]) -
		f1[7]*(f2[0]*f2[5]-f2[2]*f2[3]) +
		f1[8]*(f2[0]*f2[4]-f2[1]*f2[3])

	t0 = f1[4]*f1[8] - f1[5]*f1[7]
	t1 = f1[3]*f1[8] - f1[5]*f1[6]
	t2 = f1[3]*f1[7] - f1[4]*f1[6]

	c[2] = f2[0]*t0 - f2[1]*t1 + f2[2]*t2 -
		f2[3]*(f1[1]*f1[8]-f1[2]*f1[7]) +
		f2[4]*(f1[0]*f1[8]-f1[2]*f1[6]) -
		f2[5]*(f1[0]*f1[7]-f1[1]*f1[6]) +
		f2[6]*(f1[1]*f1[5]-f1[2]*f1[4]) -
		f2[7]*(f1[0]*f1[5]-f1[2]*f1[3]) +
		f2[8]*(f1[0]*f1[4]-f1[1]*f1[3])

	c[3] = f1[0]*t0 - f1[1]*t1 + f1[2]*t2

	roots := cubic.RealRoots(c)
	if len(roots) < 1 || len(roots) > 3 {
		return dst, false
	}

	for _, root := range roots {
		s := f1[8]*root + f2[8]

		// A vanishing trailing entry cannot be scaled to the
		// bottom-right-one convention. Skip the root; the sample as a
		// whole still counts as solved.
		if math.Abs(s) <= epsilon {
			continue
		}

		mu := 1 / s
		lambda := root * mu

		var f model.Mat3
		for i := 0; i < 8; i++ {
			f[i] = f1[i]*lambda + f2[i]*mu
		}
		f[8] = 1

		dst = append(dst, f)
	}

	return dst, true
}
