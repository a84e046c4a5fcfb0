package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon floors distances used as divisors so coincident agents never produce NaN.
const Epsilon = 1e-4

// Clamp functions for common value ranges

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

// Vector functions

// normalizeOrZero returns the unit vector of v, or the zero vector when v is (near) zero.
func normalizeOrZero(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n < Epsilon*Epsilon || math.IsNaN(n) {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// distance returns the Euclidean distance between two points.
func distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// clampToBounds keeps p inside the rectangle [0, w] x [0, h].
func clampToBounds(p r2.Vec, w, h float64) r2.Vec {
	return r2.Vec{X: clampFloat(p.X, 0, w), Y: clampFloat(p.Y, 0, h)}
}

// Overlaps reports whether two axis-aligned boxes given as (top-left, size) overlap.
// Touching edges do not count as overlap.
func Overlaps(aPos, aSize, bPos, bSize r2.Vec) bool {
	return aPos.X < bPos.X+bSize.X &&
		aPos.X+aSize.X > bPos.X &&
		aPos.Y < bPos.Y+bSize.Y &&
		aPos.Y+aSize.Y > bPos.Y
}

// CircleHitsBox reports whether a circle intersects a box by clamping the circle
// centre into the box and comparing the clamped-point distance with the radius.
func CircleHitsBox(center r2.Vec, radius float64, boxPos, boxSize r2.Vec) bool {
	closest := r2.Vec{
		X: clampFloat(center.X, boxPos.X, boxPos.X+boxSize.X),
		Y: clampFloat(center.Y, boxPos.Y, boxPos.Y+boxSize.Y),
	}
	return distance(closest, center) < radius
}
