package atlaspack

import (
	"math"

	"golang.org/x/image/math/f32"
	"seehuhn.de/go/geom/vec"
)

// snapEpsilon is the distance from the image border within which normalized hull coordinates are
// snapped onto the border.
const snapEpsilon = 1e-4

// Plane is a half-plane through texel space: every point p of the hull satisfies
// Normal·p <= Distance, measured from the image center.
type Plane struct {
	Normal   vec.Vec2
	Distance float64
}

// ConvexHull is an N-sided convex polygon around the occupied texels of an image, stored as N
// bounding planes in order around the circle.
type ConvexHull struct {
	Planes []Plane
	// Width and Height are the dimensions of the source mask.
	Width, Height int
}

// ConvexHullFromImage computes a hull of numPlanes evenly spaced planes around the occupied
// texels of mask. Each plane is pushed out to the farthest occupied texel center and then by half
// a texel, so the hull encloses whole texels. The second return value is false, and the hull is
// empty, when no texel of mask is set or mask holds fewer than width*height texels.
func ConvexHullFromImage(numPlanes int, mask []byte, width, height int) (ConvexHull, bool) {
	hull := ConvexHull{Width: width, Height: height}
	if numPlanes < 3 || width <= 0 || height <= 0 || len(mask) < width*height || maskEmpty(mask) {
		return hull, false
	}

	hull.Planes = make([]Plane, numPlanes)
	center := vec.Vec2{X: float64(width) / 2, Y: float64(height) / 2}
	corners := [4]vec.Vec2{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5}}

	for i := range hull.Planes {
		n := Normalize(direction(2 * math.Pi * float64(i) / float64(numPlanes)))

		dist := math.Inf(-1)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if mask[y*width+x] == 0 {
					continue
				}
				p := vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
				p = p.Sub(center)
				dist = max(dist, Dot(n, p))
			}
		}

		extent := math.Inf(-1)
		for _, c := range corners {
			extent = max(extent, n.Dot(c))
		}
		hull.Planes[i] = Plane{Normal: n, Distance: dist + extent}
	}

	return hull, true
}

// Empty tests whether the hull has no planes.
func (h ConvexHull) Empty() bool {
	return len(h.Planes) == 0
}

// Vertices returns one vertex per plane, the intersection of each plane with the next, in winding
// order. Coordinates are fractions of the image size centered on the image, so the image itself
// spans [-0.5, 0.5] on both axes.
func (h ConvexHull) Vertices() []f32.Vec2 {
	if h.Empty() {
		return nil
	}

	out := make([]f32.Vec2, len(h.Planes))
	for i, a := range h.Planes {
		b := h.Planes[(i+1)%len(h.Planes)]
		p := intersectPlanes(a, b)
		out[i] = toF32(vec.Vec2{
			X: snap(p.X / float64(h.Width)),
			Y: snap(p.Y / float64(h.Height)),
		})
	}
	return out
}

// intersectPlanes returns the point on the boundary lines of both planes. Planes are never
// parallel when they are adjacent in a hull of three or more evenly spaced planes.
func intersectPlanes(a, b Plane) vec.Vec2 {
	det := a.Normal.X*b.Normal.Y - a.Normal.Y*b.Normal.X
	return vec.Vec2{
		X: (a.Distance*b.Normal.Y - b.Distance*a.Normal.Y) / det,
		Y: (a.Normal.X*b.Distance - b.Normal.X*a.Distance) / det,
	}
}

// snap moves values within snapEpsilon of the image border exactly onto it.
func snap(v float64) float64 {
	switch {
	case math.Abs(v-0.5) < snapEpsilon:
		return 0.5
	case math.Abs(v+0.5) < snapEpsilon:
		return -0.5
	}
	return v
}

// vim: ts=4
