package atlaspack

import (
	"fmt"
	"image"
)

// Point is an integer texel coordinate, with y growing downwards.
type Point struct {
	X, Y int
}

// NewPoint returns the point (x, y).
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("<%v, %v>", p.X, p.Y)
}

// Size holds the dimensions of an image, page or placement in texels.
type Size struct {
	Width, Height int
}

// NewSize returns a size of width by height texels.
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

func (sz Size) String() string {
	return fmt.Sprintf("<%v, %v>", sz.Width, sz.Height)
}

// Area returns the number of texels covered.
func (sz *Size) Area() int {
	return sz.Width * sz.Height
}

// Perimeter returns the sum length of all sides.
func (sz *Size) Perimeter() int {
	return (sz.Width + sz.Height) << 1
}

// MaxSide returns the longer of the two sides.
func (sz *Size) MaxSide() int {
	return max(sz.Width, sz.Height)
}

// MinSide returns the shorter of the two sides.
func (sz *Size) MinSide() int {
	return min(sz.Width, sz.Height)
}

// Swap returns the size of the same area turned a quarter: width and height exchanged.
func (sz Size) Swap() Size {
	return Size{Width: sz.Height, Height: sz.Width}
}

// Rect is a placement on a page: the top-left corner and the as-placed size.
type Rect struct {
	Point
	Size
}

// NewRect returns the rectangle at (x, y) of w by h texels.
func NewRect(x, y, w, h int) Rect {
	return Rect{Point: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// NewRectLTRB returns the rectangle spanning the left/top/right/bottom edges.
func NewRectLTRB(l, t, r, b int) Rect {
	return NewRect(l, t, r-l, b-t)
}

// Eq tests whether both rectangles have the same location and size.
func (r *Rect) Eq(rect Rect) bool {
	return *r == rect
}

func (r Rect) String() string {
	return fmt.Sprintf("<%v, %v, %v, %v>", r.X, r.Y, r.Width, r.Height)
}

// Right returns the x coordinate one past the last column of the rectangle.
func (r *Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the y coordinate one past the last row of the rectangle.
func (r *Rect) Bottom() int {
	return r.Y + r.Height
}

// ContainsRect tests whether rect lies entirely within the receiver. Shared edges count as
// contained.
func (r *Rect) ContainsRect(rect Rect) bool {
	return r.X <= rect.X && rect.Right() <= r.Right() &&
		r.Y <= rect.Y && rect.Bottom() <= r.Bottom()
}

// Intersects tests whether the two rectangles share at least one texel. Rectangles that only
// touch along an edge do not intersect.
func (r *Rect) Intersects(rect Rect) bool {
	return rect.X < r.Right() && r.X < rect.Right() &&
		rect.Y < r.Bottom() && r.Y < rect.Bottom()
}

// Bounds converts the rectangle to the equivalent standard library rectangle.
func (r *Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// Rotation is the clockwise rotation, in degrees, applied to an image when it was placed.
type Rotation int

const (
	// Rotate0 indicates the image is stored upright.
	Rotate0 Rotation = 0
	// Rotate90 indicates the image is stored rotated a quarter turn clockwise.
	Rotate90 Rotation = 90
	// Rotate180 indicates the image is stored upside down.
	Rotate180 Rotation = 180
	// Rotate270 indicates the image is stored rotated a quarter turn counter-clockwise.
	Rotate270 Rotation = 270
)

// Valid tests whether the rotation is one of the four supported quarter turns.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// String returns the rotation in degrees.
func (r Rotation) String() string {
	return fmt.Sprintf("%d°", int(r))
}

// vim: ts=4
