package atlaspack

import "golang.org/x/image/math/f32"

// Image is one source sprite registered with a Context.
type Image struct {
	// Path is the user supplied path or identifier of the image.
	Path string
	// ID is the index of the image in insertion order.
	ID int
	// Width and Height are the original, unrotated dimensions.
	Width, Height int
	// Channels is the number of interleaved 8-bit channels per texel (1 to 4).
	Channels int
	// Pixels is the borrowed source buffer. It is never modified.
	Pixels []byte
	// Rect is the as-placed location on the page. When the image is rotated its width and height
	// are swapped relative to the original.
	Rect Rect
	// Rotation is Rotate90 when the packer swapped width and height to achieve the fit.
	Rotation Rotation
	// Vertices is the outline of the image in image-local coordinates, normalized to
	// [-0.5, 0.5] on both axes with y growing downwards. It is a triangle list, except after
	// ComputeHulls(PlaneHull) where it is a convex polygon in winding order. Empty when there is
	// nothing to draw.
	Vertices []f32.Vec2
	// Page is the index of the page the image was placed on, or -1 before packing.
	Page int
}

// Size returns the original dimensions of the image.
func (img *Image) Size() Size {
	return NewSize(img.Width, img.Height)
}

// Placement returns the as-placed rectangle and rotation of the image.
func (img *Image) Placement() (Rect, Rotation) {
	return img.Rect, img.Rotation
}

// NumVertices returns the number of vertices in the image's outline.
func (img *Image) NumVertices() int {
	return len(img.Vertices)
}

// Placed tests whether the image has been assigned to a page.
func (img *Image) Placed() bool {
	return img.Page >= 0
}

// quadVertices returns the box triangulation of a full image: two triangles covering
// [-0.5, 0.5] on both axes.
func quadVertices() []f32.Vec2 {
	return boxVertices(nil, -0.5, -0.5, 0.5, 0.5)
}

// borderPolygon returns the image border as a convex polygon, in the winding order of
// ConvexHull.Vertices.
func borderPolygon() []f32.Vec2 {
	return []f32.Vec2{{0.5, 0.5}, {-0.5, 0.5}, {-0.5, -0.5}, {0.5, -0.5}}
}

// withinImage tests whether every vertex lies inside the normalized image bounds.
func withinImage(verts []f32.Vec2) bool {
	for _, v := range verts {
		if v[0] < -0.5 || v[0] > 0.5 || v[1] < -0.5 || v[1] > 0.5 {
			return false
		}
	}
	return true
}

// boxVertices appends two triangles covering the box (x0, y0)-(x1, y1) to dst.
func boxVertices(dst []f32.Vec2, x0, y0, x1, y1 float32) []f32.Vec2 {
	return append(dst,
		f32.Vec2{x0, y0}, f32.Vec2{x1, y0}, f32.Vec2{x1, y1},
		f32.Vec2{x0, y0}, f32.Vec2{x1, y1}, f32.Vec2{x0, y1},
	)
}

// Page is one output atlas bitmap.
type Page struct {
	// Index is the position of the page in creation order.
	Index int
	// Width and Height are the page dimensions. They only grow while packing.
	Width, Height int
	// Channels is the channel count of Pixels, the maximum over all images of the context.
	Channels int
	// Images holds the indices of the images placed on this page, in placement order.
	Images []int
	// Pixels is the composited bitmap. It is nil until Context.Composite has run.
	Pixels []byte

	usedArea int
}

// Size returns the dimensions of the page.
func (p *Page) Size() Size {
	return NewSize(p.Width, p.Height)
}

// Bounds returns the page as a rectangle at the origin.
func (p *Page) Bounds() Rect {
	return NewRect(0, 0, p.Width, p.Height)
}

// Used computes the ratio of area covered by images to the page area, in the range of 0.0 and
// 1.0.
func (p *Page) Used() float64 {
	if p.Width <= 0 || p.Height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.Width*p.Height)
}

// vim: ts=4
