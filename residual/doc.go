// Package residual provides squared point-to-model residual functions for
// scoring candidate two-view models against correspondences.
//
// All functions return squared distances in squared pixels, so an inlier
// threshold t must be compared as residual < t*t. Degenerate inputs score
// +Inf rather than NaN, which keeps them out of every consensus set.
package residual
