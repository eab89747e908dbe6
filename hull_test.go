package atlaspack

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/f32"
	"seehuhn.de/go/geom/vec"
)

func filledMask(width, height int) []byte {
	mask := make([]byte, width*height)
	for i := range mask {
		mask[i] = 1
	}
	return mask
}

func TestOccupancyMask(t *testing.T) {
	rgba := []byte{
		1, 2, 3, 0, 1, 2, 3, 1,
		1, 2, 3, 255, 0, 0, 0, 0,
	}
	if diff := cmp.Diff([]byte{0, 1, 1, 0}, OccupancyMask(rgba, 2, 2, 4)); diff != "" {
		t.Errorf("RGBA mask mismatch (-want +got):\n%s", diff)
	}

	grayAlpha := []byte{9, 0, 9, 5}
	if diff := cmp.Diff([]byte{0, 1}, OccupancyMask(grayAlpha, 2, 1, 2)); diff != "" {
		t.Errorf("gray+alpha mask mismatch (-want +got):\n%s", diff)
	}

	rgb := make([]byte, 2*2*3)
	if diff := cmp.Diff(filledMask(2, 2), OccupancyMask(rgb, 2, 2, 3)); diff != "" {
		t.Errorf("RGB mask mismatch (-want +got):\n%s", diff)
	}
}

func TestDilateMask(t *testing.T) {
	mask := make([]byte, 5*5)
	mask[2*5+2] = 1

	want := []byte{
		0, 0, 0, 0, 0,
		0, 1, 1, 1, 0,
		0, 1, 1, 1, 0,
		0, 1, 1, 1, 0,
		0, 0, 0, 0, 0,
	}
	if diff := cmp.Diff(want, DilateMask(mask, 5, 5, 1)); diff != "" {
		t.Errorf("radius 1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(filledMask(5, 5), DilateMask(mask, 5, 5, 2)); diff != "" {
		t.Errorf("radius 2 mismatch (-want +got):\n%s", diff)
	}

	same := DilateMask(mask, 5, 5, 0)
	if diff := cmp.Diff(mask, same); diff != "" {
		t.Errorf("radius 0 mismatch (-want +got):\n%s", diff)
	}
	same[0] = 1
	if mask[0] != 0 {
		t.Error("DilateMask returned the input slice")
	}
}

func TestConvexHullEmpty(t *testing.T) {
	hull, ok := ConvexHullFromImage(8, make([]byte, 16), 4, 4)
	if ok || !hull.Empty() {
		t.Errorf("ConvexHullFromImage on an empty mask = %v, %v", hull, ok)
	}
	if v := hull.Vertices(); v != nil {
		t.Errorf("empty hull has vertices %v", v)
	}
}

func TestHullShortMask(t *testing.T) {
	if hull, ok := ConvexHullFromImage(8, filledMask(4, 3), 4, 4); ok || !hull.Empty() {
		t.Errorf("ConvexHullFromImage on a short mask = %v, %v", hull, ok)
	}
	if v := HullFromImage(filledMask(4, 3), 4, 4); v != nil {
		t.Errorf("HullFromImage on a short mask = %v", v)
	}
}

func TestConvexHullFewPlanes(t *testing.T) {
	const width, height = 7, 3
	pix := make([]byte, width*height*4)
	for _, p := range []Point{{X: 0, Y: 0}, {X: 6, Y: 2}} {
		i := (p.Y*width + p.X) * 4
		copy(pix[i:i+4], []byte{255, 255, 255, 255})
	}

	// Three planes around a thin diagonal reach well beyond the image.
	hull, ok := ConvexHullFromImage(3, OccupancyMask(pix, width, height, 4), width, height)
	if !ok || withinImage(hull.Vertices()) {
		t.Fatalf("expected a hull reaching outside the image, got %v", hull.Vertices())
	}

	opts := DefaultOptions()
	opts.NumHullPlanes = 3
	ctx := newContext(t, opts, nil)
	if _, err := ctx.AddImage("diagonal", width, height, 4, pix); err != nil {
		t.Fatal(err)
	}
	if err := ctx.PackImages(); err != nil {
		t.Fatal(err)
	}
	if err := ctx.ComputeHulls(PlaneHull); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(borderPolygon(), ctx.Image(0).Vertices); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestConvexHullVertexCount(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	mask := make([]byte, 16*12)
	for i := range mask {
		if rnd.Intn(3) == 0 {
			mask[i] = 1
		}
	}

	for _, n := range []int{3, 4, 5, 8, 16, 32} {
		hull, ok := ConvexHullFromImage(n, mask, 16, 12)
		if !ok {
			t.Fatalf("ConvexHullFromImage(%d) found no hull", n)
		}
		if got := len(hull.Vertices()); got != n {
			t.Errorf("ConvexHullFromImage(%d) has %d vertices", n, got)
		}
	}
}

func TestConvexHullSquare(t *testing.T) {
	hull, ok := ConvexHullFromImage(4, filledMask(8, 8), 8, 8)
	if !ok {
		t.Fatal("no hull")
	}

	want := []f32.Vec2{{0.5, 0.5}, {-0.5, 0.5}, {-0.5, -0.5}, {0.5, -0.5}}
	if diff := cmp.Diff(want, hull.Vertices()); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

// TestConvexHullEnclosesTexels checks that every corner of every occupied texel is on the inner
// side of every plane.
func TestConvexHullEnclosesTexels(t *testing.T) {
	const width, height = 20, 10
	mask := make([]byte, width*height)
	for y := 2; y < 8; y++ {
		for x := 3 + y; x < 15; x++ {
			mask[y*width+x] = 1
		}
	}

	hull, ok := ConvexHullFromImage(12, mask, width, height)
	if !ok {
		t.Fatal("no hull")
	}

	center := vec.Vec2{X: width / 2, Y: height / 2}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y*width+x] == 0 {
				continue
			}
			for _, corner := range square(float64(x), float64(y), 1) {
				p := corner.Sub(center)
				for i, plane := range hull.Planes {
					if d := plane.Normal.Dot(p); d > plane.Distance+1e-9 {
						t.Fatalf("texel (%d, %d) is outside plane %d: %v > %v", x, y, i, d, plane.Distance)
					}
				}
			}
		}
	}

	poly := make([]vec.Vec2, 0, 12)
	for _, v := range hull.Vertices() {
		poly = append(poly, vec.Vec2{X: float64(v[0]), Y: float64(v[1])})
	}
	// The hull must overlap the occupied region and stay clear of the empty bottom-left corner.
	if !ConvexOverlap(poly, square(-0.25, -0.25, 0.1)) {
		t.Error("hull does not cover the occupied region")
	}
	if ConvexOverlap(poly, square(-0.5, 0.4, 0.05)) {
		t.Error("hull covers the empty bottom-left corner")
	}
}

func TestBoxHullFull(t *testing.T) {
	if diff := cmp.Diff(quadVertices(), HullFromImage(filledMask(8, 4), 8, 4)); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
	if v := HullFromImage(make([]byte, 16), 4, 4); len(v) != 0 {
		t.Errorf("empty mask produced %d vertices", len(v))
	}
}

func TestBoxHullCornerTieBreak(t *testing.T) {
	mask := []byte{
		1, 1,
		1, 0,
	}
	got := HullFromImage(mask, 2, 2)

	// The first box grows right instead of down, leaving the bottom-left texel for a second box.
	want := boxVertices(nil, -0.5, -0.5, 0.5, 0)
	want = boxVertices(want, -0.5, 0, 0, 0.5)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

// TestBoxHullCoverage checks that the boxes cover exactly the occupied texels, once each.
func TestBoxHullCoverage(t *testing.T) {
	const width, height = 17, 13
	rnd := rand.New(rand.NewSource(11))
	mask := make([]byte, width*height)
	for i := range mask {
		if rnd.Intn(4) != 0 {
			mask[i] = 1
		}
	}

	verts := HullFromImage(mask, width, height)
	if len(verts)%6 != 0 {
		t.Fatalf("%d vertices is not a whole number of boxes", len(verts))
	}

	covered := make([]int, width*height)
	for i := 0; i < len(verts); i += 6 {
		x0 := int((verts[i][0]+0.5)*width + 0.5)
		y0 := int((verts[i][1]+0.5)*height + 0.5)
		x1 := int((verts[i+2][0]+0.5)*width + 0.5)
		y1 := int((verts[i+2][1]+0.5)*height + 0.5)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				covered[y*width+x]++
			}
		}
	}
	for i := range mask {
		if covered[i] != int(mask[i]) {
			t.Fatalf("texel (%d, %d) covered %d times, mask is %d", i%width, i/width, covered[i], mask[i])
		}
	}
}

// vim: ts=4
