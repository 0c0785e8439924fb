package epigo

import (
	"errors"
	"fmt"
)

var (
	// ErrNoModel is returned when no iteration produced a candidate model
	// that could be scored.
	ErrNoModel = errors.New("no model found")

	// ErrSamplerFailed is returned when the sampler cannot draw a minimal
	// sample even though enough correspondences exist.
	ErrSamplerFailed = errors.New("sampler failed to draw a minimal sample")
)

// ErrTooFewMatches indicates a correspondence set smaller than the solver's
// minimal sample size.
type ErrTooFewMatches struct {
	Need int
	Got  int
}

func (e *ErrTooFewMatches) Error() string {
	return fmt.Sprintf("too few correspondences: need %d, got %d", e.Need, e.Got)
}

// ErrBadThreshold indicates a non-positive inlier threshold.
type ErrBadThreshold struct {
	Threshold float64
}

func (e *ErrBadThreshold) Error() string {
	return fmt.Sprintf("inlier threshold must be positive: %g", e.Threshold)
}
