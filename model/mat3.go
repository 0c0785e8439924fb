package model

import (
	"fmt"
	"math"
)

// Mat3 is a 3x3 matrix in row-major order. It is the descriptor shared by
// all candidate models: fundamental matrices, essential matrices and
// homographies flatten to the same nine entries.
//
// Mat3 is a value type. Methods never mutate the receiver; they return a new
// matrix instead.
type Mat3 [9]float64

// Identity returns the 3x3 identity matrix.
func Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// At returns the entry in row i, column j. Indices are not bounds-checked
// beyond the underlying array access.
func (m Mat3) At(i, j int) float64 {
	return m[3*i+j]
}

// Set returns a copy of m with the entry in row i, column j replaced by v.
func (m Mat3) Set(i, j int, v float64) Mat3 {
	m[3*i+j] = v
	return m
}

// T returns the transpose of m.
func (m Mat3) T() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Det returns the determinant of m, expanded along the first row.
func (m Mat3) Det() float64 {
	t0 := m[4]*m[8] - m[5]*m[7]
	t1 := m[3]*m[8] - m[5]*m[6]
	t2 := m[3]*m[7] - m[4]*m[6]

	return m[0]*t0 - m[1]*t1 + m[2]*t2
}

// Mul returns the matrix product m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var p Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[3*i+j] = m[3*i]*n[j] + m[3*i+1]*n[3+j] + m[3*i+2]*n[6+j]
		}
	}

	return p
}

// Scale returns m with every entry multiplied by s.
func (m Mat3) Scale(s float64) Mat3 {
	for i := range m {
		m[i] *= s
	}

	return m
}

// MulVec applies m to the homogeneous point (x, y, w) and returns the
// transformed coordinates.
func (m Mat3) MulVec(x, y, w float64) (float64, float64, float64) {
	return m[0]*x + m[1]*y + m[2]*w,
		m[3]*x + m[4]*y + m[5]*w,
		m[6]*x + m[7]*y + m[8]*w
}

// Norm returns the Frobenius norm of m.
func (m Mat3) Norm() float64 {
	var sum float64
	for _, v := range m {
		sum += v * v
	}

	return math.Sqrt(sum)
}

// IsFinite reports whether every entry of m is neither NaN nor infinite.
func (m Mat3) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// String returns a row-per-line representation of m.
func (m Mat3) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g; %g %g %g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}
