package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/epigo/match"
	"github.com/hupe1980/epigo/model"
)

// Homography estimates the 3x3 projective transform mapping points of the
// first view onto the second.
//
// Every correspondence contributes two rows to a direct linear transform
// system whose null vector is the flattened homography. The result is
// scaled so the bottom-right entry equals one; solutions whose trailing
// entry vanishes are dropped without failing the call.
type Homography struct{}

var (
	_ Solver     = Homography{}
	_ Nonminimal = Homography{}
)

// SampleSize returns 4.
func (Homography) SampleSize() int {
	return 4
}

// EstimateModel computes the homography for the sampled rows. A minimal
// sample of four is the special case of the least-squares fit.
func (h Homography) EstimateModel(set *match.Set, sample []int, dst []model.Mat3) ([]model.Mat3, bool) {
	return h.EstimateModelNonminimal(set, sample, dst)
}

// EstimateModelNonminimal fits one homography to all sampled rows and
// appends it to dst. It returns false when fewer than four rows are given
// or the factorization fails.
func (Homography) EstimateModelNonminimal(set *match.Set, sample []int, dst []model.Mat3) ([]model.Mat3, bool) {
	n := len(sample)
	if n < 4 {
		return dst, false
	}

	coeffs := mat.NewDense(2*n, 9, nil)

	for i, idx := range sample {
		x0, y0, x1, y1 := set.PointPair(idx)

		coeffs.SetRow(2*i, []float64{
			x0, y0, 1,
			0, 0, 0,
			-x1 * x0, -x1 * y0, -x1,
		})
		coeffs.SetRow(2*i+1, []float64{
			0, 0, 0,
			x0, y0, 1,
			-y1 * x0, -y1 * y0, -y1,
		})
	}

	h, ok := nullVector(coeffs)
	if !ok {
		return dst, false
	}

	if math.Abs(h[8]) <= epsilon {
		return dst, true
	}

	inv := 1 / h[8]
	for i := 0; i < 8; i++ {
		h[i] *= inv
	}
	h[8] = 1

	return append(dst, h), true
}
