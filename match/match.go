package match

import (
	"errors"
	"fmt"
)

// MinColumns is the smallest usable column count: x0, y0 in the first view
// and x1, y1 in the second. Additional columns (scores, scales, ...) are
// carried along untouched.
const MinColumns = 4

var (
	// ErrTooFewColumns is returned when a set is created with fewer than
	// MinColumns columns.
	ErrTooFewColumns = errors.New("at least 4 columns required")

	// ErrRaggedData is returned when a flat slice does not divide evenly
	// into rows of the requested width.
	ErrRaggedData = errors.New("data length is not a multiple of the column count")
)

// Set is a dense table of point correspondences, one row per match, stored
// row-major. Row order carries no meaning; rows are addressed by index.
//
// A Set is not safe for concurrent mutation. Concurrent reads are fine,
// which is all the estimation loop needs.
type Set struct {
	data []float64
	cols int
}

// NewSet creates an empty set with the given column count.
func NewSet(cols int) (*Set, error) {
	if cols < MinColumns {
		return nil, ErrTooFewColumns
	}

	return &Set{cols: cols}, nil
}

// FromSlice wraps a flat row-major slice as a set without copying. The
// caller must not modify data afterwards.
func FromSlice(data []float64, cols int) (*Set, error) {
	if cols < MinColumns {
		return nil, ErrTooFewColumns
	}

	if len(data)%cols != 0 {
		return nil, fmt.Errorf("%w: %d values, %d columns", ErrRaggedData, len(data), cols)
	}

	return &Set{data: data, cols: cols}, nil
}

// Len returns the number of rows.
func (s *Set) Len() int {
	return len(s.data) / s.cols
}

// Cols returns the number of columns per row.
func (s *Set) Cols() int {
	return s.cols
}

// At returns the value in row i, column j.
func (s *Set) At(i, j int) float64 {
	return s.data[i*s.cols+j]
}

// Row returns row i as a view into the underlying storage. The slice is
// only valid until the next Append.
func (s *Set) Row(i int) []float64 {
	return s.data[i*s.cols : (i+1)*s.cols]
}

// PointPair returns the two image points of row i.
func (s *Set) PointPair(i int) (x0, y0, x1, y1 float64) {
	off := i * s.cols

	return s.data[off], s.data[off+1], s.data[off+2], s.data[off+3]
}

// Append adds a row holding the two image points. Extra columns, if the set
// has any, are zero filled.
func (s *Set) Append(x0, y0, x1, y1 float64) {
	s.data = append(s.data, x0, y0, x1, y1)
	for j := MinColumns; j < s.cols; j++ {
		s.data = append(s.data, 0)
	}
}

// AppendRow adds a full row. The value count must equal Cols.
func (s *Set) AppendRow(vals ...float64) error {
	if len(vals) != s.cols {
		return fmt.Errorf("%w: row of %d values, %d columns", ErrRaggedData, len(vals), s.cols)
	}

	s.data = append(s.data, vals...)

	return nil
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	data := make([]float64, len(s.data))
	copy(data, s.data)

	return &Set{data: data, cols: s.cols}
}
