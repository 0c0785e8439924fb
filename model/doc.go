// Package model defines the value types shared by solvers and estimators.
//
// # Types
//
//   - Mat3: 3x3 row-major matrix, the flattened descriptor of every
//     candidate model (fundamental matrix, homography)
//
// Mat3 is small enough to pass by value; all methods are pure.
package model
