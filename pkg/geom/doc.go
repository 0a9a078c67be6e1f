// Package geom holds the line/plane/triangle intersection core: a 3D vector
// value type, triangular faces, parametric lines and the face scan that
// reports where a line first crosses a hull boundary.
//
// Everything here is a pure function over immutable values. Inputs are
// trusted: zero direction vectors and collinear faces are not rejected.
package geom
