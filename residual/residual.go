package residual

import (
	"fmt"
	"math"

	"github.com/hupe1980/epigo/model"
)

// Func computes the squared residual of the correspondence
// (x0, y0) <-> (x1, y1) under the model m. Distances are squared, so
// thresholds must be squared before comparison. Implementations are pure
// and safe for concurrent use.
type Func func(m model.Mat3, x0, y0, x1, y1 float64) float64

// Kind identifies a residual function.
type Kind int

const (
	// KindSampson is the squared Sampson distance to the epipolar
	// constraint.
	KindSampson Kind = iota
	// KindSymmetricEpipolar is the squared symmetric distance to the two
	// epipolar lines.
	KindSymmetricEpipolar
	// KindAlgebraic is the squared raw epipolar constraint value.
	KindAlgebraic
	// KindTransfer is the squared forward transfer error of a homography.
	KindTransfer
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSampson:
		return "sampson"
	case KindSymmetricEpipolar:
		return "symmetric_epipolar"
	case KindAlgebraic:
		return "algebraic"
	case KindTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Provider returns the residual function for the given kind.
func Provider(k Kind) (Func, error) {
	switch k {
	case KindSampson:
		return Sampson, nil
	case KindSymmetricEpipolar:
		return SymmetricEpipolar, nil
	case KindAlgebraic:
		return Algebraic, nil
	case KindTransfer:
		return Transfer, nil
	default:
		return nil, fmt.Errorf("unsupported residual kind: %v", k)
	}
}

// epipolarLines returns the epipolar line of (x0, y0) in the second view,
// the first two coefficients of the line of (x1, y1) in the first view,
// and the constraint value.
func epipolarLines(f model.Mat3, x0, y0, x1, y1 float64) (l1x, l1y, l1w, l0x, l0y, e float64) {
	l1x, l1y, l1w = f.MulVec(x0, y0, 1)

	l0x = f[0]*x1 + f[3]*y1 + f[6]
	l0y = f[1]*x1 + f[4]*y1 + f[7]

	e = x1*l1x + y1*l1y + l1w

	return l1x, l1y, l1w, l0x, l0y, e
}

// Sampson returns the squared Sampson distance, the first-order
// approximation of the geometric reprojection error of a fundamental
// matrix. Correspondences whose constraint gradient vanishes score +Inf.
func Sampson(f model.Mat3, x0, y0, x1, y1 float64) float64 {
	l1x, l1y, _, l0x, l0y, e := epipolarLines(f, x0, y0, x1, y1)

	denom := l1x*l1x + l1y*l1y + l0x*l0x + l0y*l0y
	if denom <= 0 {
		return math.Inf(1)
	}

	return e * e / denom
}

// SymmetricEpipolar returns the sum of squared distances of each point to
// the epipolar line induced by its counterpart.
func SymmetricEpipolar(f model.Mat3, x0, y0, x1, y1 float64) float64 {
	l1x, l1y, _, l0x, l0y, e := epipolarLines(f, x0, y0, x1, y1)

	n1 := l1x*l1x + l1y*l1y
	n0 := l0x*l0x + l0y*l0y

	if n1 <= 0 || n0 <= 0 {
		return math.Inf(1)
	}

	return e*e*(1/n1) + e*e*(1/n0)
}

// Algebraic returns the squared epipolar constraint value. It is cheap but
// not geometrically meaningful; use it only to verify exact fits.
func Algebraic(f model.Mat3, x0, y0, x1, y1 float64) float64 {
	_, _, _, _, _, e := epipolarLines(f, x0, y0, x1, y1)

	return e * e
}

// Transfer returns the squared forward transfer error of a homography:
// the distance between (x1, y1) and the mapped first point.
// Correspondences mapped to infinity score +Inf.
func Transfer(h model.Mat3, x0, y0, x1, y1 float64) float64 {
	tx, ty, tw := h.MulVec(x0, y0, 1)
	if tw == 0 {
		return math.Inf(1)
	}

	dx := x1 - tx/tw
	dy := y1 - ty/tw

	return dx*dx + dy*dy
}
