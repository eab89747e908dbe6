package atlaspack

import (
	"math"

	"golang.org/x/image/math/f32"
	"seehuhn.de/go/geom/vec"
)

// NextPowerOfTwo returns the smallest power of two that is greater than or equal to n. Values of
// n less than 1 return 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// IsPowerOfTwo tests whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func Normalize(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Dot returns the dot product of two vectors.
func Dot(a, b vec.Vec2) float64 {
	return a.Dot(b)
}

// direction returns the unit vector at the given angle, measured counter-clockwise from the
// positive x-axis.
func direction(angle float64) vec.Vec2 {
	sin, cos := math.Sincos(angle)
	return vec.Vec2{X: cos, Y: sin}
}

// perp returns v rotated a quarter turn counter-clockwise.
func perp(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}

func toF32(v vec.Vec2) f32.Vec2 {
	return f32.Vec2{float32(v.X), float32(v.Y)}
}

// project returns the interval covered by the polygon when projected onto axis.
func project(poly []vec.Vec2, axis vec.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		d := axis.Dot(p)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}

// separated tests whether any edge normal of poly separates a from b.
func separated(poly, a, b []vec.Vec2) bool {
	for i := range poly {
		edge := poly[(i+1)%len(poly)].Sub(poly[i])
		axis := perp(edge)
		if axis.X == 0 && axis.Y == 0 {
			continue
		}
		aLo, aHi := project(a, axis)
		bLo, bHi := project(b, axis)
		if aHi <= bLo || bHi <= aLo {
			return true
		}
	}
	return false
}

// ConvexOverlap tests two convex polygons for overlap using the separating axis theorem. Polygons
// that only share an edge or a corner are not considered overlapping. Either winding order is
// accepted.
func ConvexOverlap(a, b []vec.Vec2) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return !separated(a, a, b) && !separated(b, a, b)
}

// vim: ts=4
