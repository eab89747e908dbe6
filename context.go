package atlaspack

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"slices"

	"golang.org/x/image/draw"
)

// Context owns the images and pages of one packing run. The actual placement is delegated to a
// Strategy.
//
// A Context is not safe for concurrent use. Independent runs may execute concurrently on
// separate contexts.
type Context struct {
	opts        Options
	strategy    Strategy
	images      []*Image
	pages       []*Page
	maxChannels int
	packed      bool
}

// New creates a context with the given options and strategy. A nil strategy selects the skyline
// bottom-left packer.
func New(opts Options, strategy Strategy) (*Context, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if strategy == nil {
		strategy = NewSkylinePacker(SkylineBL)
	}
	return &Context{opts: opts, strategy: strategy}, nil
}

// NewDefault creates a context with DefaultOptions and the skyline bottom-left packer.
func NewDefault() *Context {
	ctx, err := New(DefaultOptions(), nil)
	if err != nil {
		panic(err)
	}
	return ctx
}

// Options returns the options the context was created with.
func (c *Context) Options() Options {
	return c.opts
}

// AddImage registers a source image. The pixel buffer is borrowed, not copied: it must stay
// valid and unmodified until compositing has finished. No page is touched until PackImages.
func (c *Context) AddImage(path string, width, height, channels int, pixels []byte) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %q has size %dx%d", ErrInvalidImage, path, width, height)
	}
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("%w: %q has %d channels", ErrInvalidImage, path, channels)
	}
	if width > math.MaxInt/height/channels {
		return nil, fmt.Errorf("%w: %q is too large (%dx%dx%d)", ErrInvalidImage, path, width, height, channels)
	}
	if need := width * height * channels; len(pixels) < need {
		return nil, fmt.Errorf("%w: %q needs %d bytes of pixel data, got %d", ErrInvalidImage, path, need, len(pixels))
	}

	img := &Image{
		Path:     path,
		ID:       len(c.images),
		Width:    width,
		Height:   height,
		Channels: channels,
		Pixels:   pixels,
		Page:     -1,
	}
	if err := c.strategy.CreateImage(c, img); err != nil {
		return nil, err
	}

	c.images = append(c.images, img)
	c.maxChannels = max(c.maxChannels, channels)
	c.packed = false
	return img, nil
}

// AddImageFrom registers an already decoded image. It is converted to 4-channel non-premultiplied
// RGBA into a buffer owned by the context.
func (c *Context) AddImageFrom(path string, src image.Image) (*Image, error) {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return c.AddImage(path, b.Dx(), b.Dy(), 4, dst.Pix)
}

// Sort reorders the images before packing. Images are otherwise packed in the order they were
// added. IDs are reassigned to match the new order.
func (c *Context) Sort(compare SortFunc, reverse bool) {
	slices.SortStableFunc(c.images, func(a, b *Image) int {
		if reverse {
			return compare(b.Size(), a.Size())
		}
		return compare(a.Size(), b.Size())
	})
	for i, img := range c.images {
		img.ID = i
	}
	c.packed = false
}

// PackImages places every image. On success each image has a placement, rotation, vertices and
// page, and the pages are fully dimensioned but not yet composited. Packing stops at the first
// image that cannot be placed, returning a *PackError.
//
// Calling PackImages again discards the previous result and packs from scratch.
func (c *Context) PackImages() error {
	c.pages = nil
	for _, img := range c.images {
		img.Page = -1
		img.Rect = Rect{}
		img.Rotation = Rotate0
		img.Vertices = nil
	}
	c.packed = false

	if err := c.strategy.PackImages(c); err != nil {
		Logger().Warn("atlaspack: packing failed", slog.Any("error", err))
		return err
	}
	c.packed = true

	if log := Logger(); log.Enabled(context.Background(), slog.LevelDebug) {
		for _, page := range c.pages {
			log.Debug("atlaspack: packed page",
				slog.Int("page", page.Index),
				slog.Int("width", page.Width),
				slog.Int("height", page.Height),
				slog.Int("images", len(page.Images)),
				slog.Float64("used", page.Used()))
		}
	}
	return nil
}

// Packed tests whether the last call to PackImages succeeded and no image has been added since.
func (c *Context) Packed() bool {
	return c.packed
}

// NumPages returns the number of output pages.
func (c *Context) NumPages() int {
	return len(c.pages)
}

// Page returns the page at index, in creation order.
func (c *Context) Page(index int) *Page {
	return c.pages[index]
}

// Pages returns all pages in creation order. The backing memory is owned by the context.
func (c *Context) Pages() []*Page {
	return c.pages
}

// NumImages returns the number of registered images.
func (c *Context) NumImages() int {
	return len(c.images)
}

// Image returns the image at index, in packing order.
func (c *Context) Image(index int) *Image {
	return c.images[index]
}

// Images returns all images in packing order. The backing memory is owned by the context.
func (c *Context) Images() []*Image {
	return c.images
}

// MaxChannels returns the largest channel count of all registered images, which is the channel
// count of composited pages.
func (c *Context) MaxChannels() int {
	return c.maxChannels
}

// HullKind selects the geometry computed for each image by ComputeHulls.
type HullKind int

const (
	// QuadHull is the full box triangulation produced by PackImages.
	QuadHull HullKind = iota
	// PlaneHull is the convex hull of Options.NumHullPlanes planes.
	PlaneHull
	// BoxHull is the box decomposition of the occupied texels.
	BoxHull
)

// ComputeHulls replaces the vertices of every image with geometry of the given kind, computed
// from the occupancy mask dilated by Options.DilateRadius. Fully transparent images end up with
// no vertices, meaning there is nothing to draw. A plane hull with a vertex outside the image
// (possible with few planes) is replaced by the image border, so no vertex samples a neighbouring
// image. PackImages must have succeeded first.
func (c *Context) ComputeHulls(kind HullKind) error {
	if !c.packed {
		return ErrNotPacked
	}

	for _, img := range c.images {
		if kind == QuadHull {
			img.Vertices = quadVertices()
			continue
		}

		mask := OccupancyMask(img.Pixels, img.Width, img.Height, img.Channels)
		mask = DilateMask(mask, img.Width, img.Height, c.opts.DilateRadius)

		switch kind {
		case PlaneHull:
			hull, ok := ConvexHullFromImage(c.opts.NumHullPlanes, mask, img.Width, img.Height)
			if !ok {
				img.Vertices = nil
				continue
			}
			img.Vertices = hull.Vertices()
			if !withinImage(img.Vertices) {
				img.Vertices = borderPolygon()
			}
		case BoxHull:
			img.Vertices = HullFromImage(mask, img.Width, img.Height)
		default:
			return fmt.Errorf("atlaspack: unknown hull kind %d", kind)
		}
	}
	return nil
}

// Verify checks that every image is placed on exactly one page, contained in it, and does not
// overlap any other image of that page. Each image is checked together with the Options.Padding
// texels reserved to its right and below.
func (c *Context) Verify() error {
	if !c.packed {
		return ErrNotPacked
	}

	seen := make([]int, len(c.images))
	for _, page := range c.pages {
		bounds := page.Bounds()
		for i, a := range page.Images {
			seen[a]++
			ra := c.reserved(a)
			if !bounds.ContainsRect(ra) {
				return fmt.Errorf("atlaspack: image %d %s exceeds page %d %s", a, ra, page.Index, page.Size())
			}
			for _, b := range page.Images[i+1:] {
				if rb := c.reserved(b); ra.Intersects(rb) {
					return fmt.Errorf("atlaspack: images %d %s and %d %s overlap on page %d", a, ra, b, rb, page.Index)
				}
			}
		}
	}
	for i, n := range seen {
		if n != 1 {
			return fmt.Errorf("atlaspack: image %d is placed on %d pages", i, n)
		}
	}
	return nil
}

// Destroy releases vertex data and pages. Caller owned pixel buffers are left untouched.
func (c *Context) Destroy() {
	for _, img := range c.images {
		c.strategy.DestroyImage(c, img)
		img.Pixels = nil
	}
	c.images = nil
	c.pages = nil
	c.maxChannels = 0
	c.packed = false
}

func (c *Context) newPage(width, height int) *Page {
	page := &Page{
		Index:    len(c.pages),
		Width:    width,
		Height:   height,
		Channels: c.maxChannels,
	}
	c.pages = append(c.pages, page)
	Logger().Debug("atlaspack: new page",
		slog.Int("page", page.Index),
		slog.Int("width", width),
		slog.Int("height", height))
	return page
}

// placeImage records the placement of img on page. The rotation is derived from the as-placed
// width.
func (c *Context) placeImage(img *Image, page *Page, rect Rect) {
	img.Rect = rect
	img.Page = page.Index
	img.Rotation = Rotate0
	if rect.Width != img.Width {
		img.Rotation = Rotate90
	}
	img.Vertices = quadVertices()
	page.Images = append(page.Images, img.ID)
	page.usedArea += rect.Area()
}

// reserved returns the placement of image index including its padding.
func (c *Context) reserved(index int) Rect {
	r := c.images[index].Rect
	return NewRect(r.X, r.Y, r.Width+c.opts.Padding, r.Height+c.opts.Padding)
}

func (c *Context) packFailed(index int, pageSize Size) error {
	img := c.images[index]
	return &PackError{Image: index, Path: img.Path, Size: img.Size(), PageSize: pageSize}
}

// vim: ts=4
