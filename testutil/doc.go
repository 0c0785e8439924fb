// Package testutil provides testing utilities for epigo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random source and builders for
// synthetic two-view scenes with known ground truth.
//
// # Synthetic Scenes
//
//	rng := testutil.NewRNG(seed)
//	set := testutil.FundamentalScene(rng, f, 70, 30, 5.0)
//
// Scene builders place the exact inliers first, so rows [0, inliers)
// are the ground-truth consensus set.
package testutil
