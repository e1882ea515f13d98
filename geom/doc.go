// Package geom provides axis-aligned grid vector math for the wiring
// graph: a four-way Direction enum and the small set of integer vector
// operations the rest of this module builds on (dot product, L1
// magnitude, between-ness, line intersection, axis snapping).
//
// Every coordinate in this package is an integer grid cell; there is no
// floating point anywhere. A Vec is axis-aligned when exactly one of its
// components is non-zero — the zero vector is not axis-aligned, and
// neither is a diagonal vector (diagonal wires are not permitted).
//
// Complexity: every function here is O(1).
package geom
