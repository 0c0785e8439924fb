// Package solver implements the minimal and least-squares solvers that turn
// small samples of point correspondences into candidate two-view models.
//
// # Solvers
//
//   - SevenPoint: fundamental matrix from exactly 7 correspondences, up to
//     three candidates per sample
//   - EightPoint: fundamental matrix from 8 or more correspondences via the
//     normalized direct linear transform, one candidate
//   - Homography: projective transform from 4 or more correspondences, one
//     candidate
//
// All solvers are stateless value types and safe for concurrent use. They
// append to the destination slice they are handed, in the style of
// strconv.AppendInt, so hypothesis buffers can be reused across samples.
package solver
