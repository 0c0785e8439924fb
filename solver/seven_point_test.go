package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/epigo/match"
	"github.com/hupe1980/epigo/model"
	"github.com/hupe1980/epigo/residual"
)

// groundTruth is the sum of two rank-1 integer matrices, so it has rank two
// and a unit bottom-right entry.
var groundTruth = model.Mat3{
	0, 1, 1,
	1, 0, 1,
	-1, 2, 1,
}

// yOn returns the second-view y that puts (x1, y) on the epipolar line of
// (x0, y0) under f.
func yOn(f model.Mat3, x0, y0, x1 float64) float64 {
	a, b, c := f.MulVec(x0, y0, 1)

	return -(a*x1 + c) / b
}

// fundamentalSet builds a correspondence set whose rows lie exactly on the
// epipolar geometry of f. Each triple is (x0, y0, x1); y1 is derived.
func fundamentalSet(t *testing.T, f model.Mat3, raw [][3]float64) *match.Set {
	t.Helper()

	set, err := match.NewSet(match.MinColumns)
	require.NoError(t, err)

	for _, r := range raw {
		set.Append(r[0], r[1], r[2], yOn(f, r[0], r[1], r[2]))
	}

	return set
}

func maxAbsDiff(a, b model.Mat3) float64 {
	var d float64
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}

	return d
}

func closestTo(models []model.Mat3, want model.Mat3) model.Mat3 {
	best := models[0]
	for _, m := range models[1:] {
		if maxAbsDiff(m, want) < maxAbsDiff(best, want) {
			best = m
		}
	}

	return best
}

func TestSevenPointSampleSize(t *testing.T) {
	assert.Equal(t, 7, SevenPoint{}.SampleSize())
}

func TestSevenPointThreeRoots(t *testing.T) {
	set := fundamentalSet(t, groundTruth, [][3]float64{
		{-3, 1, 2}, {4, -2, -1}, {0, 5, 3}, {1, -4, 0}, {2, 3, -2}, {5, 0, 1}, {-5, 2, 4},
	})

	models, ok := SevenPoint{}.EstimateModel(set, []int{0, 1, 2, 3, 4, 5, 6}, nil)
	require.True(t, ok)
	require.Len(t, models, 3)

	for _, m := range models {
		assert.Equal(t, 1.0, m.At(2, 2))
		assert.InDelta(t, 0, m.Det(), 1e-9)

		for i := 0; i < set.Len(); i++ {
			x0, y0, x1, y1 := set.PointPair(i)
			assert.InDelta(t, 0, residual.Algebraic(m, x0, y0, x1, y1), 1e-9)
		}
	}

	recovered := closestTo(models, groundTruth)
	for i := range groundTruth {
		assert.InDelta(t, groundTruth[i], recovered[i], 1e-6)
	}
}

func TestSevenPointSingleRoot(t *testing.T) {
	set := fundamentalSet(t, groundTruth, [][3]float64{
		{3, 4, 4}, {5, -6, 1}, {6, 4, 6}, {2, 0, 0}, {0, 0, -5}, {1, 4, 0}, {-6, -3, -5},
	})

	models, ok := SevenPoint{}.EstimateModel(set, []int{0, 1, 2, 3, 4, 5, 6}, nil)
	require.True(t, ok)
	require.Len(t, models, 1)

	for i := range groundTruth {
		assert.InDelta(t, groundTruth[i], models[0][i], 1e-6)
	}
}

func TestSevenPointAppendsToDst(t *testing.T) {
	set := fundamentalSet(t, groundTruth, [][3]float64{
		{-3, 1, 2}, {4, -2, -1}, {0, 5, 3}, {1, -4, 0}, {2, 3, -2}, {5, 0, 1}, {-5, 2, 4},
	})

	sentinel := model.Identity()
	dst := []model.Mat3{sentinel}

	models, ok := SevenPoint{}.EstimateModel(set, []int{0, 1, 2, 3, 4, 5, 6}, dst)
	require.True(t, ok)
	require.Len(t, models, 4)
	assert.Equal(t, sentinel, models[0])
}

func TestSevenPointSampleOrder(t *testing.T) {
	set := fundamentalSet(t, groundTruth, [][3]float64{
		{-3, 1, 2}, {4, -2, -1}, {0, 5, 3}, {1, -4, 0}, {2, 3, -2}, {5, 0, 1}, {-5, 2, 4},
	})

	a, ok := SevenPoint{}.EstimateModel(set, []int{0, 1, 2, 3, 4, 5, 6}, nil)
	require.True(t, ok)

	b, ok := SevenPoint{}.EstimateModel(set, []int{6, 5, 4, 3, 2, 1, 0}, nil)
	require.True(t, ok)

	// The constraint system is the same set of rows, so the recovered
	// ground-truth candidate must agree.
	ra := closestTo(a, groundTruth)
	rb := closestTo(b, groundTruth)
	for i := range ra {
		assert.InDelta(t, ra[i], rb[i], 1e-6)
	}
}

func TestSevenPointDegenerate(t *testing.T) {
	t.Run("duplicate rows", func(t *testing.T) {
		set, err := match.NewSet(match.MinColumns)
		require.NoError(t, err)

		for i := 0; i < 4; i++ {
			set.Append(-3, 1, 2, yOn(groundTruth, -3, 1, 2))
		}
		for i := 0; i < 3; i++ {
			set.Append(4, -2, -1, yOn(groundTruth, 4, -2, -1))
		}

		models, ok := SevenPoint{}.EstimateModel(set, []int{0, 1, 2, 3, 4, 5, 6}, nil)
		if ok {
			assert.LessOrEqual(t, len(models), 3)
			for _, m := range models {
				assert.Equal(t, 1.0, m.At(2, 2))
			}
		} else {
			assert.Empty(t, models)
		}
	})

	t.Run("identical rows", func(t *testing.T) {
		set, err := match.NewSet(match.MinColumns)
		require.NoError(t, err)

		for i := 0; i < 7; i++ {
			set.Append(1, 2, 3, 4)
		}

		models, ok := SevenPoint{}.EstimateModel(set, []int{0, 1, 2, 3, 4, 5, 6}, nil)
		if ok {
			assert.LessOrEqual(t, len(models), 3)
		} else {
			assert.Empty(t, models)
		}
	})

	t.Run("collinear points", func(t *testing.T) {
		set, err := match.NewSet(match.MinColumns)
		require.NoError(t, err)

		for _, x := range []float64{-3, -2, -1.5, 0, 1, 2, 3} {
			set.Append(x, 2*x+1, x, yOn(groundTruth, x, 2*x+1, x))
		}

		models, ok := SevenPoint{}.EstimateModel(set, []int{0, 1, 2, 3, 4, 5, 6}, nil)
		if ok {
			assert.LessOrEqual(t, len(models), 3)
			for _, m := range models {
				assert.Equal(t, 1.0, m.At(2, 2))
			}
		} else {
			assert.Empty(t, models)
		}
	})

	t.Run("nan coordinates", func(t *testing.T) {
		set, err := match.NewSet(match.MinColumns)
		require.NoError(t, err)

		for i := 0; i < 7; i++ {
			set.Append(math.NaN(), 1, 2, 3)
		}

		models, ok := SevenPoint{}.EstimateModel(set, []int{0, 1, 2, 3, 4, 5, 6}, nil)
		assert.False(t, ok)
		assert.Empty(t, models)
	})
}
