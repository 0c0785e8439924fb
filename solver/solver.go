package solver

import (
	"github.com/hupe1980/epigo/match"
	"github.com/hupe1980/epigo/model"
)

// Solver generates candidate models from a minimal sample of
// correspondences.
//
// EstimateModel appends zero or more candidates to dst and returns the
// extended slice, leaving any models already present untouched. The boolean
// reports whether the sample produced a well-posed system; it can be true
// with nothing appended when every candidate was discarded during
// normalization, so callers must check the returned length rather than the
// flag alone.
//
// sample must hold exactly SampleSize distinct row indices into set. That
// precondition belongs to the caller; solvers do not re-validate it.
//
// Implementations are stateless and safe for concurrent use on independent
// arguments.
type Solver interface {
	// SampleSize returns the number of correspondences a minimal sample
	// needs.
	SampleSize() int

	// EstimateModel computes candidate models from the sampled rows.
	EstimateModel(set *match.Set, sample []int, dst []model.Mat3) ([]model.Mat3, bool)
}

// Nonminimal is implemented by solvers that can also fit a single model to
// more than SampleSize correspondences in a least-squares sense. The
// estimation loop uses it to polish the winning model on its consensus set.
type Nonminimal interface {
	// EstimateModelNonminimal fits the sampled rows, which may number more
	// than SampleSize, and appends the result to dst.
	EstimateModelNonminimal(set *match.Set, sample []int, dst []model.Mat3) ([]model.Mat3, bool)
}
