package atlaspack

import (
	"log/slog"
	"math"
)

// Strategy is a pluggable packing algorithm. A Context calls CreateImage and DestroyImage as
// images enter and leave it, and delegates PackImages entirely to the strategy.
type Strategy interface {
	// CreateImage is called when an image is added to ctx.
	CreateImage(ctx *Context, img *Image) error
	// DestroyImage is called for every image when ctx is destroyed.
	DestroyImage(ctx *Context, img *Image)
	// PackImages places every image of ctx, creating and sizing pages as needed.
	PackImages(ctx *Context) error
}

// bin is a packing algorithm's view of a single page.
type bin interface {
	// find returns the best position for a width*height rectangle. When rotate is true the
	// swapped orientation is considered as well. The returned rect holds the as-placed size.
	find(width, height int, rotate bool) (candidate, bool)
	// place commits a candidate previously returned by find.
	place(c candidate)
	// grow extends the page to the new size, which is never smaller than the current one.
	grow(width, height int)
}

// candidate is a position returned by bin.find.
type candidate struct {
	Rect
	index  int
	score1 int
	score2 int
}

// better reports whether scores (s1, s2) beat the candidate's. Lower is better.
func (c *candidate) better(s1, s2 int) bool {
	return s1 < c.score1 || (s1 == c.score1 && s2 < c.score2)
}

func noCandidate() candidate {
	return candidate{index: -1, score1: math.MaxInt, score2: math.MaxInt}
}

// packerBase implements the image hooks shared by all built-in strategies.
type packerBase struct {
	heuristic Heuristic
}

func (p *packerBase) CreateImage(_ *Context, img *Image) error {
	img.Page = -1
	img.Rotation = Rotate0
	img.Rect = Rect{}
	img.Vertices = nil
	return nil
}

func (p *packerBase) DestroyImage(_ *Context, img *Image) {
	img.Vertices = nil
}

// Heuristic returns the heuristic the strategy was created with.
func (p *packerBase) Heuristic() Heuristic {
	return p.heuristic
}

// DefaultPageSize returns the initial square page size used in auto-sizing mode for images of the
// given sizes. It intentionally starts below the naive estimate and relies on growth.
func DefaultPageSize(sizes []Size) int {
	total := 0
	for i := range sizes {
		total += sizes[i].Area()
	}
	size := NextPowerOfTwo(int(math.Sqrt(float64(total)))) / 2
	return max(size, 1)
}

// growSize doubles the smaller side of a page, preferring width on ties, without exceeding
// limit. When the smaller side is already at the limit the other side grows instead.
func growSize(width, height, limit int) (int, int, bool) {
	switch {
	case width <= height && width < limit:
		return min(width*2, limit), height, true
	case height < limit:
		return width, min(height*2, limit), true
	case width < limit:
		return min(width*2, limit), height, true
	}
	return width, height, false
}

// padSize returns the area reserved for an image of the given size.
func padSize(size Size, padding int) Size {
	if padding <= 0 {
		return size
	}
	return NewSize(size.Width+padding, size.Height+padding)
}

// unpadRect returns the image rectangle within a reserved rectangle. The padding lies to the
// right and below.
func unpadRect(rect Rect, padding int) Rect {
	if padding <= 0 {
		return rect
	}
	return NewRect(rect.X, rect.Y, rect.Width-padding, rect.Height-padding)
}

// packPages runs the page driver shared by all strategies. Images are placed in insertion order.
// A fixed page size spills over into new pages, auto-sizing grows the single active page. Each
// image is retried until it fits or the page size ceiling is reached.
func packPages(ctx *Context, newBin func(width, height int) bin) error {
	opts := &ctx.opts
	if len(ctx.images) == 0 {
		return nil
	}

	fixed := opts.PageSize > 0
	pageSize := opts.PageSize
	if !fixed {
		sizes := make([]Size, len(ctx.images))
		for i, img := range ctx.images {
			sizes[i] = padSize(img.Size(), opts.Padding)
		}
		pageSize = min(DefaultPageSize(sizes), opts.MaxPageSize)
	}

	page := ctx.newPage(pageSize, pageSize)
	active := newBin(page.Width, page.Height)

	for i, img := range ctx.images {
		size := padSize(img.Size(), opts.Padding)
		if fixed && (size.Width > pageSize || size.Height > pageSize) {
			return ctx.packFailed(i, NewSize(pageSize, pageSize))
		}

		for {
			c, ok := active.find(size.Width, size.Height, opts.AllowRotate && img.Width != img.Height)
			if ok {
				active.place(c)
				ctx.placeImage(img, page, unpadRect(c.Rect, opts.Padding))
				break
			}

			if fixed {
				page = ctx.newPage(pageSize, pageSize)
				active = newBin(page.Width, page.Height)
				continue
			}

			width, height, grown := growSize(page.Width, page.Height, opts.MaxPageSize)
			if !grown {
				return ctx.packFailed(i, NewSize(page.Width, page.Height))
			}
			Logger().Debug("atlaspack: growing page",
				slog.Int("page", page.Index),
				slog.Int("width", width),
				slog.Int("height", height))
			active.grow(width, height)
			page.Width, page.Height = width, height
		}
	}

	return nil
}

// vim: ts=4
