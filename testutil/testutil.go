package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/epigo/match"
	"github.com/hupe1980/epigo/model"
	"github.com/hupe1980/epigo/residual"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Range returns a pseudo-random number in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rand.Float64()*(hi-lo)
}

// maxTries bounds the rejection sampling loops below.
const maxTries = 256

// EpipolarPair returns a correspondence that satisfies the epipolar
// constraint of f exactly up to rounding: the first point is drawn at
// random and the second is placed on its epipolar line.
func EpipolarPair(r *RNG, f model.Mat3) (x0, y0, x1, y1 float64, ok bool) {
	for try := 0; try < maxTries; try++ {
		px := r.Range(-8, 8)
		py := r.Range(-8, 8)

		// l = F*(px, py, 1) is the epipolar line a*x1 + b*y1 + c = 0.
		a, b, c := f.MulVec(px, py, 1)

		t := r.Range(-8, 8)

		// Solve for the coordinate with the larger line coefficient to
		// keep the point finite and well scaled.
		switch {
		case math.Abs(b) >= math.Abs(a) && math.Abs(b) > 1e-9:
			return px, py, t, -(a*t + c) / b, true
		case math.Abs(a) > 1e-9:
			return px, py, -(b*t + c) / a, t, true
		}
	}

	return 0, 0, 0, 0, false
}

// ProjectedPair returns a correspondence mapped exactly by the homography h.
func ProjectedPair(r *RNG, h model.Mat3) (x0, y0, x1, y1 float64, ok bool) {
	for try := 0; try < maxTries; try++ {
		px := r.Range(-8, 8)
		py := r.Range(-8, 8)

		tx, ty, tw := h.MulVec(px, py, 1)
		if math.Abs(tw) < 1e-9 {
			continue
		}

		return px, py, tx / tw, ty / tw, true
	}

	return 0, 0, 0, 0, false
}

// FundamentalScene builds a correspondence set for the fundamental matrix
// f. Rows [0, inliers) satisfy the epipolar constraint exactly; the
// remaining rows are random pairs whose Sampson distance from f exceeds
// sep pixels. It panics when f is too degenerate to place points on.
func FundamentalScene(r *RNG, f model.Mat3, inliers, outliers int, sep float64) *match.Set {
	set, _ := match.NewSet(match.MinColumns)

	for i := 0; i < inliers; i++ {
		x0, y0, x1, y1, ok := EpipolarPair(r, f)
		if !ok {
			panic(fmt.Sprintf("testutil: cannot place point on epipolar line of %v", f))
		}

		set.Append(x0, y0, x1, y1)
	}

	appendOutliers(r, set, outliers, func(x0, y0, x1, y1 float64) float64 {
		return residual.Sampson(f, x0, y0, x1, y1)
	}, sep)

	return set
}

// HomographyScene builds a correspondence set for the homography h in the
// same layout as FundamentalScene, with transfer error as the outlier
// criterion.
func HomographyScene(r *RNG, h model.Mat3, inliers, outliers int, sep float64) *match.Set {
	set, _ := match.NewSet(match.MinColumns)

	for i := 0; i < inliers; i++ {
		x0, y0, x1, y1, ok := ProjectedPair(r, h)
		if !ok {
			panic(fmt.Sprintf("testutil: homography maps sample region to infinity: %v", h))
		}

		set.Append(x0, y0, x1, y1)
	}

	appendOutliers(r, set, outliers, func(x0, y0, x1, y1 float64) float64 {
		return residual.Transfer(h, x0, y0, x1, y1)
	}, sep)

	return set
}

func appendOutliers(r *RNG, set *match.Set, n int, sq func(x0, y0, x1, y1 float64) float64, sep float64) {
	for i := 0; i < n; i++ {
		placed := false

		for try := 0; try < maxTries; try++ {
			x0 := r.Range(-8, 8)
			y0 := r.Range(-8, 8)
			x1 := r.Range(-8, 8)
			y1 := r.Range(-8, 8)

			if sq(x0, y0, x1, y1) > sep*sep {
				set.Append(x0, y0, x1, y1)
				placed = true
				break
			}
		}

		if !placed {
			panic("testutil: cannot draw an outlier this far from the model")
		}
	}
}
