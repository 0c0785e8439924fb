package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := NewSet(4)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, 4, s.Cols())
	})

	t.Run("too few columns", func(t *testing.T) {
		_, err := NewSet(3)
		assert.ErrorIs(t, err, ErrTooFewColumns)
	})
}

func TestFromSlice(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := FromSlice([]float64{
			1, 2, 3, 4,
			5, 6, 7, 8,
		}, 4)
		require.NoError(t, err)

		assert.Equal(t, 2, s.Len())
		assert.Equal(t, 7.0, s.At(1, 2))

		x0, y0, x1, y1 := s.PointPair(0)
		assert.Equal(t, []float64{1, 2, 3, 4}, []float64{x0, y0, x1, y1})
	})

	t.Run("ragged", func(t *testing.T) {
		_, err := FromSlice([]float64{1, 2, 3, 4, 5}, 4)
		assert.ErrorIs(t, err, ErrRaggedData)
	})

	t.Run("too few columns", func(t *testing.T) {
		_, err := FromSlice([]float64{1, 2, 3}, 3)
		assert.ErrorIs(t, err, ErrTooFewColumns)
	})
}

func TestSetAppend(t *testing.T) {
	s, err := NewSet(6)
	require.NoError(t, err)

	s.Append(1, 2, 3, 4)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, []float64{1, 2, 3, 4, 0, 0}, s.Row(0))

	require.NoError(t, s.AppendRow(5, 6, 7, 8, 9, 10))
	require.Equal(t, 2, s.Len())

	x0, y0, x1, y1 := s.PointPair(1)
	assert.Equal(t, []float64{5, 6, 7, 8}, []float64{x0, y0, x1, y1})

	assert.ErrorIs(t, s.AppendRow(1, 2, 3), ErrRaggedData)
}

func TestSetClone(t *testing.T) {
	s, err := FromSlice([]float64{1, 2, 3, 4}, 4)
	require.NoError(t, err)

	c := s.Clone()
	c.Append(5, 6, 7, 8)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, c.Len())
}
