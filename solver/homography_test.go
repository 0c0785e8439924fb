package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/epigo/match"
	"github.com/hupe1980/epigo/model"
	"github.com/hupe1980/epigo/residual"
)

// projective is an invertible transform with a non-unit bottom-right entry,
// so normalization is exercised.
var projective = model.Mat3{
	2, 1, -1,
	0, 3, 2,
	1, 0, 4,
}

func homographySet(t *testing.T, h model.Mat3, srcs [][2]float64) *match.Set {
	t.Helper()

	set, err := match.NewSet(match.MinColumns)
	require.NoError(t, err)

	for _, s := range srcs {
		tx, ty, tw := h.MulVec(s[0], s[1], 1)
		set.Append(s[0], s[1], tx/tw, ty/tw)
	}

	return set
}

func TestHomographySampleSize(t *testing.T) {
	assert.Equal(t, 4, Homography{}.SampleSize())
}

func TestHomographyExact(t *testing.T) {
	set := homographySet(t, projective, [][2]float64{
		{0, 0}, {3, 1}, {1, 2}, {-2, 3},
	})

	models, ok := Homography{}.EstimateModel(set, []int{0, 1, 2, 3}, nil)
	require.True(t, ok)
	require.Len(t, models, 1)

	m := models[0]
	assert.Equal(t, 1.0, m.At(2, 2))

	// The recovered transform matches the input up to the fixed scale.
	want := projective.Scale(1 / projective[8])
	for i := range want {
		assert.InDelta(t, want[i], m[i], 1e-9)
	}

	for i := 0; i < set.Len(); i++ {
		x0, y0, x1, y1 := set.PointPair(i)
		assert.InDelta(t, 0, residual.Transfer(m, x0, y0, x1, y1), 1e-12)
	}
}

func TestHomographyNonminimal(t *testing.T) {
	set := homographySet(t, projective, [][2]float64{
		{0, 0}, {3, 1}, {1, 2}, {-2, 3}, {4, -1}, {-3, -2}, {2, 4},
	})

	sample := []int{0, 1, 2, 3, 4, 5, 6}

	models, ok := Homography{}.EstimateModelNonminimal(set, sample, nil)
	require.True(t, ok)
	require.Len(t, models, 1)

	want := projective.Scale(1 / projective[8])
	for i := range want {
		assert.InDelta(t, want[i], models[0][i], 1e-9)
	}
}

func TestHomographyTooFewRows(t *testing.T) {
	set := homographySet(t, projective, [][2]float64{
		{0, 0}, {3, 1}, {1, 2},
	})

	models, ok := Homography{}.EstimateModel(set, []int{0, 1, 2}, nil)
	assert.False(t, ok)
	assert.Empty(t, models)
}

func TestHomographyDegenerate(t *testing.T) {
	set, err := match.NewSet(match.MinColumns)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		set.Append(1, 2, 3, 4)
	}

	models, ok := Homography{}.EstimateModel(set, []int{0, 1, 2, 3}, nil)
	if ok {
		assert.LessOrEqual(t, len(models), 1)
		for _, m := range models {
			assert.Equal(t, 1.0, m.At(2, 2))
		}
	} else {
		assert.Empty(t, models)
	}
}
