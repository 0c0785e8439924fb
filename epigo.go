package epigo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/epigo/match"
	"github.com/hupe1980/epigo/model"
	"github.com/hupe1980/epigo/residual"
	"github.com/hupe1980/epigo/sampler"
	"github.com/hupe1980/epigo/solver"
)

// Result is the outcome of a successful estimation.
type Result struct {
	// Model is the winning model, refitted on its consensus set when a
	// refit solver is configured and improved the score.
	Model model.Mat3

	// Inliers marks the rows of the correspondence set whose residual
	// against Model is below the squared threshold.
	Inliers *roaring.Bitmap

	// InlierCount is the cardinality of Inliers.
	InlierCount int

	// Score is the truncated quadratic gain of Model over the whole set.
	Score float64

	// Iterations is the number of minimal samples that were drawn.
	Iterations int

	// Refitted reports whether the refit stage replaced the minimal-sample
	// model.
	Refitted bool
}

// Estimator searches for the model that best explains a set of point
// correspondences. It repeatedly draws minimal samples, generates candidate
// models with the configured solver, and scores each candidate against the
// full set with an MSAC gain: every row within the inlier threshold
// contributes the margin by which it clears it. The loop stops once enough
// samples have been drawn to contain an all-inlier draw with the configured
// confidence.
type Estimator struct {
	solver   solver.Solver
	residual residual.Func
	opts     options
	progress rate.Sometimes
}

// Fundamental creates an Estimator for fundamental matrices: the seven-point
// minimal solver scored with the Sampson distance, refined by an eight-point
// least-squares refit over the consensus set.
func Fundamental(optFns ...Option) (*Estimator, error) {
	base := []Option{WithRefitSolver(solver.EightPoint{})}

	return New(solver.SevenPoint{}, residual.Sampson, append(base, optFns...)...)
}

// Homography creates an Estimator for plane projective mappings: the
// four-point solver scored with the transfer distance, refined by a DLT
// refit over the consensus set.
func Homography(optFns ...Option) (*Estimator, error) {
	base := []Option{WithRefitSolver(solver.Homography{})}

	return New(solver.Homography{}, residual.Transfer, append(base, optFns...)...)
}

// New creates an Estimator around the given minimal solver and residual
// function.
func New(s solver.Solver, rf residual.Func, optFns ...Option) (*Estimator, error) {
	if s == nil {
		return nil, errors.New("a solver is required")
	}

	if rf == nil {
		return nil, errors.New("a residual function is required")
	}

	opts := applyOptions(optFns)

	if opts.threshold <= 0 {
		return nil, &ErrBadThreshold{Threshold: opts.threshold}
	}

	if opts.confidence < minConfidence {
		opts.confidence = minConfidence
	}

	if opts.confidence > maxConfidence {
		opts.confidence = maxConfidence
	}

	if opts.maxIterations < 1 {
		opts.maxIterations = 1
	}

	if opts.minIterations < 1 {
		opts.minIterations = 1
	}

	if opts.minIterations > opts.maxIterations {
		opts.minIterations = opts.maxIterations
	}

	if opts.workers < 1 {
		opts.workers = 1
	}

	if opts.sampler == nil {
		seed := opts.seed
		if !opts.seedSet {
			seed = time.Now().UnixNano()
		}

		opts.sampler = sampler.NewUniform(seed)
	}

	return &Estimator{
		solver:   s,
		residual: rf,
		opts:     opts,
		progress: rate.Sometimes{First: 1, Interval: time.Second},
	}, nil
}

// SampleSize returns the minimal sample size of the configured solver.
func (e *Estimator) SampleSize() int {
	return e.solver.SampleSize()
}

// Estimate runs the consensus loop over the correspondence set and returns
// the best model found.
func (e *Estimator) Estimate(ctx context.Context, set *match.Set) (*Result, error) {
	start := time.Now()

	result, err := e.estimate(ctx, set)

	e.opts.metricsCollector.RecordEstimate(time.Since(start), err)

	if err != nil {
		e.opts.logger.LogEstimate(ctx, 0, 0, err)
		return nil, err
	}

	e.opts.logger.LogEstimate(ctx, result.Iterations, result.InlierCount, nil)

	return result, nil
}

// hypothesis is the outcome of evaluating one minimal sample.
type hypothesis struct {
	model   model.Mat3
	score   float64
	inliers int
	models  int
	solved  bool
}

func (e *Estimator) estimate(ctx context.Context, set *match.Set) (*Result, error) {
	n := set.Len()
	need := e.solver.SampleSize()

	if n < need {
		return nil, &ErrTooFewMatches{Need: need, Got: n}
	}

	workers := e.opts.workers

	samples := make([][]int, workers)
	buffers := make([][]model.Mat3, workers)
	results := make([]hypothesis, workers)

	for i := range samples {
		samples[i] = make([]int, need)
	}

	best := Result{Score: math.Inf(-1)}
	found := false
	limit := e.opts.maxIterations
	iter := 0

	for iter < limit {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("estimation canceled: %w", err)
		}

		batch := workers
		if rem := limit - iter; batch > rem {
			batch = rem
		}

		// The sampler is not safe for concurrent use, so samples for the
		// whole batch are drawn up front.
		for b := 0; b < batch; b++ {
			if !e.opts.sampler.Sample(samples[b], n) {
				return nil, ErrSamplerFailed
			}
		}

		if batch == 1 {
			results[0] = e.evaluate(set, samples[0], &buffers[0])
		} else {
			g, gctx := errgroup.WithContext(ctx)

			for b := 0; b < batch; b++ {
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}

					results[b] = e.evaluate(set, samples[b], &buffers[b])

					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return nil, fmt.Errorf("estimation canceled: %w", err)
			}
		}

		// Reduce in sample order so the outcome does not depend on
		// scheduling.
		for b := 0; b < batch; b++ {
			iter++

			h := results[b]

			e.opts.metricsCollector.RecordHypotheses(h.models)

			if !h.solved || h.models == 0 || h.score <= best.Score {
				continue
			}

			best.Model = h.model
			best.Score = h.score
			best.InlierCount = h.inliers
			found = true

			limit = e.iterationLimit(h.inliers, n)
		}

		e.progress.Do(func() {
			e.opts.logger.Debug("estimation progress",
				"iteration", iter,
				"limit", limit,
				"best_inliers", best.InlierCount,
			)
		})
	}

	if !found {
		return nil, ErrNoModel
	}

	best.Iterations = iter
	best.Inliers = e.inliers(set, best.Model)
	best.InlierCount = int(best.Inliers.GetCardinality())

	if e.opts.refit != nil {
		e.refit(ctx, set, &best)
	}

	return &best, nil
}

// evaluate runs the solver on one sample and scores every candidate model it
// produces, keeping the best. The model buffer is reused across calls.
func (e *Estimator) evaluate(set *match.Set, sample []int, buf *[]model.Mat3) hypothesis {
	models, ok := e.solver.EstimateModel(set, sample, (*buf)[:0])
	*buf = models

	h := hypothesis{
		score:  math.Inf(-1),
		models: len(models),
		solved: ok,
	}

	if !ok {
		return h
	}

	for _, m := range models {
		score, count := e.score(set, m)
		if score > h.score {
			h.model = m
			h.score = score
			h.inliers = count
		}
	}

	return h
}

// refit polishes the winner on its consensus set and keeps the result only
// when it scores strictly better than the minimal-sample model.
func (e *Estimator) refit(ctx context.Context, set *match.Set, best *Result) {
	start := time.Now()
	improved := false

	defer func() {
		e.opts.metricsCollector.RecordRefit(time.Since(start), improved)
		e.opts.logger.LogRefit(ctx, improved, best.InlierCount)
	}()

	consensus := bitmapIndices(best.Inliers)

	models, ok := e.opts.refit.EstimateModelNonminimal(set, consensus, nil)
	if !ok {
		return
	}

	for _, m := range models {
		score, count := e.score(set, m)
		if score > best.Score {
			best.Model = m
			best.Score = score
			best.InlierCount = count
			best.Refitted = true
			improved = true
		}
	}

	if best.Refitted {
		best.Inliers = e.inliers(set, best.Model)
		best.InlierCount = int(best.Inliers.GetCardinality())
	}
}

// score accumulates the truncated quadratic gain of m over the whole set.
// Rows at or beyond the squared threshold contribute nothing.
func (e *Estimator) score(set *match.Set, m model.Mat3) (float64, int) {
	sq := e.opts.threshold * e.opts.threshold

	var (
		gain  float64
		count int
	)

	for i := 0; i < set.Len(); i++ {
		x0, y0, x1, y1 := set.PointPair(i)

		if r := e.residual(m, x0, y0, x1, y1); r < sq {
			gain += sq - r
			count++
		}
	}

	return gain, count
}

// inliers collects the rows of set whose residual against m is below the
// squared threshold.
func (e *Estimator) inliers(set *match.Set, m model.Mat3) *roaring.Bitmap {
	sq := e.opts.threshold * e.opts.threshold
	bm := roaring.New()

	for i := 0; i < set.Len(); i++ {
		x0, y0, x1, y1 := set.PointPair(i)

		if e.residual(m, x0, y0, x1, y1) < sq {
			bm.Add(uint32(i))
		}
	}

	return bm
}

// iterationLimit returns the adaptive iteration bound for the current inlier
// ratio, clamped to the configured window.
func (e *Estimator) iterationLimit(inliers, total int) int {
	it := requiredIterations(e.opts.confidence, float64(inliers)/float64(total), e.solver.SampleSize())

	if it < e.opts.minIterations {
		it = e.opts.minIterations
	}

	if it > e.opts.maxIterations {
		it = e.opts.maxIterations
	}

	return it
}

// requiredIterations returns the number of samples after which an all-inlier
// draw has occurred with probability conf, given the inlier ratio.
func requiredIterations(conf, ratio float64, sampleSize int) int {
	if ratio <= 0 {
		return math.MaxInt32
	}

	if ratio > 1 {
		ratio = 1
	}

	w := math.Pow(ratio, float64(sampleSize))
	if w >= 1 {
		return 1
	}

	// log1p keeps the denominator exact when w is tiny.
	denom := math.Log1p(-w)
	if denom == 0 {
		return math.MaxInt32
	}

	it := math.Ceil(math.Log(1-conf) / denom)
	if it < 1 {
		return 1
	}

	if it > math.MaxInt32 {
		return math.MaxInt32
	}

	return int(it)
}

func bitmapIndices(bm *roaring.Bitmap) []int {
	out := make([]int, 0, bm.GetCardinality())

	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}

	return out
}
