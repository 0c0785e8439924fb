// Package match stores point correspondences between two views as a dense
// row-major table. The first four columns of every row are the pixel
// coordinates x0, y0, x1, y1; solvers read them through PointPair and ignore
// any trailing columns.
package match
