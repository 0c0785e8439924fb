// Package epigo estimates two-view geometry from noisy point correspondences.
//
// Epigo implements robust model fitting for epipolar geometry: minimal and
// least-squares solvers for the fundamental matrix and for plane
// homographies, wrapped in an MSAC consensus loop with adaptive termination
// and an optional refit of the winning consensus set.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	set := match.NewSet(4)
//	for _, m := range matches {
//	    set.Append(m.X0, m.Y0, m.X1, m.Y1)
//	}
//
//	est, err := epigo.Fundamental(epigo.WithThreshold(1.5))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := est.Estimate(ctx, set)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(result.Model, result.InlierCount)
//
// # Solvers
//
// The solver package provides the hypothesis generators:
//
//   - SevenPoint: up to three fundamental matrices from exactly seven
//     correspondences
//   - EightPoint: one fundamental matrix from eight or more rows via the
//     normalized direct linear transform
//   - Homography: one projective mapping from four or more rows
//
// Custom generators plug in through the solver.Solver interface, custom
// error measures through residual.Func.
//
// # Scoring
//
// Candidates are ranked by a truncated quadratic gain. Every correspondence
// whose residual falls below the squared inlier threshold contributes the
// margin by which it clears it, so models are rewarded both for covering
// many rows and for fitting them tightly. The loop stops once enough
// samples have been drawn to contain an all-inlier draw with the configured
// confidence, bounded by WithMinIterations and WithMaxIterations.
//
// # Key Features
//
//   - Seven-point minimal solver with exact determinant cubic
//   - MSAC scoring with adaptive termination
//   - Least-squares refit of the winning consensus set
//   - Pluggable samplers and residual functions
//   - Parallel hypothesis evaluation
//   - Structured logging and metrics hooks
package epigo
