package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/epigo/match"
	"github.com/hupe1980/epigo/model"
)

// EightPoint estimates a single fundamental matrix from eight or more
// correspondences with the normalized direct linear transform.
//
// Both point sets are conditioned by a similarity transform that moves the
// centroid to the origin and the mean distance to sqrt(2). The linear
// system is solved by SVD, the smallest singular value of the solution is
// zeroed to restore rank two, and the result is returned denormalized with
// unit Frobenius norm.
type EightPoint struct{}

var (
	_ Solver     = EightPoint{}
	_ Nonminimal = EightPoint{}
)

// SampleSize returns 8.
func (EightPoint) SampleSize() int {
	return 8
}

// EstimateModel computes the least-squares fit over the sampled rows. A
// minimal sample of eight is just the special case of the nonminimal fit.
func (e EightPoint) EstimateModel(set *match.Set, sample []int, dst []model.Mat3) ([]model.Mat3, bool) {
	return e.EstimateModelNonminimal(set, sample, dst)
}

// EstimateModelNonminimal fits one fundamental matrix to all sampled rows
// and appends it to dst. It returns false when fewer than eight rows are
// given, when either point set collapses to a single location, or when a
// factorization fails.
func (EightPoint) EstimateModelNonminimal(set *match.Set, sample []int, dst []model.Mat3) ([]model.Mat3, bool) {
	n := len(sample)
	if n < 8 {
		return dst, false
	}

	c0, ok := conditioning(set, sample, 0)
	if !ok {
		return dst, false
	}

	c1, ok := conditioning(set, sample, 2)
	if !ok {
		return dst, false
	}

	coeffs := mat.NewDense(n, 9, nil)

	for i, idx := range sample {
		x0, y0, x1, y1 := set.PointPair(idx)
		x0, y0 = c0.apply(x0, y0)
		x1, y1 = c1.apply(x1, y1)

		coeffs.SetRow(i, []float64{
			x1 * x0, x1 * y0, x1,
			y1 * x0, y1 * y0, y1,
			x0, y0, 1,
		})
	}

	f, ok := nullVector(coeffs)
	if !ok {
		return dst, false
	}

	f, ok = forceRankTwo(f)
	if !ok {
		return dst, false
	}

	// Undo the conditioning: F = T1ᵀ · F̂ · T0.
	f = c1.mat().T().Mul(f).Mul(c0.mat())

	norm := f.Norm()
	if norm <= epsilon {
		return dst, false
	}

	return append(dst, f.Scale(1/norm)), true
}

// conditioning computes the similarity transform that centers the points of
// one view (column offset 0 or 2) at the origin with mean distance sqrt(2).
func conditioning(set *match.Set, sample []int, col int) (similarity, bool) {
	var mx, my float64

	for _, idx := range sample {
		mx += set.At(idx, col)
		my += set.At(idx, col+1)
	}

	inv := 1 / float64(len(sample))
	mx *= inv
	my *= inv

	var dist float64

	for _, idx := range sample {
		dx := set.At(idx, col) - mx
		dy := set.At(idx, col+1) - my
		dist += math.Sqrt(dx*dx + dy*dy)
	}

	dist *= inv
	if dist <= epsilon {
		return similarity{}, false
	}

	s := math.Sqrt2 / dist

	return similarity{s: s, tx: -s * mx, ty: -s * my}, true
}

// similarity is the conditioning transform x' = s*x + t.
type similarity struct {
	s, tx, ty float64
}

func (t similarity) apply(x, y float64) (float64, float64) {
	return t.s*x + t.tx, t.s*y + t.ty
}

func (t similarity) mat() model.Mat3 {
	return model.Mat3{
		t.s, 0, t.tx,
		0, t.s, t.ty,
		0, 0, 1,
	}
}

// nullVector returns the right singular vector for the smallest singular
// value of a as a 3x3 matrix.
func nullVector(a *mat.Dense) (model.Mat3, bool) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFullV); !ok {
		return model.Mat3{}, false
	}

	var v mat.Dense
	svd.VTo(&v)

	var f model.Mat3
	for i := 0; i < 9; i++ {
		f[i] = v.At(i, 8)
	}

	return f, true
}

// forceRankTwo projects f onto the closest rank-2 matrix in the Frobenius
// sense by zeroing its smallest singular value.
func forceRankTwo(f model.Mat3) (model.Mat3, bool) {
	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(3, 3, f[:]), mat.SVDFull); !ok {
		return f, false
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	vals := svd.Values(nil)

	var d model.Mat3
	d[0], d[4] = vals[0], vals[1]

	return mat3From(&u).Mul(d).Mul(mat3From(&v).T()), true
}

func mat3From(d *mat.Dense) model.Mat3 {
	var m model.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[3*i+j] = d.At(i, j)
		}
	}

	return m
}
