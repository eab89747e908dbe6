package atlaspack

import (
	"image"

	"golang.org/x/image/draw"
)

// BlitParams controls how texels are written by CopyRGBA.
type BlitParams struct {
	// AlphaThreshold skips texels whose alpha is at or below it.
	AlphaThreshold uint8
	// Bleed pushes semi-transparent texels towards opaque.
	Bleed bool
}

// CopyRGBA blits src into dst at offset, rotating the source clockwise by rot. Channel counts may
// differ: gray sources are replicated, missing alpha is opaque, and gray destinations receive the
// mean of the color channels.
//
// Fully transparent texels and texels at or below the alpha threshold are skipped. Texels that
// land outside dst are silently dropped.
func CopyRGBA(dst []byte, dstSize Size, dstChannels int, src []byte, srcSize Size, srcChannels int, offset Point, rot Rotation, params BlitParams) {
	w, h := srcSize.Width, srcSize.Height

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := readTexel(src, (y*w+x)*srcChannels, srcChannels)
			if c[3] == 0 || c[3] <= params.AlphaThreshold {
				continue
			}

			var dx, dy int
			switch rot {
			case Rotate90:
				dx, dy = h-1-y, x
			case Rotate180:
				dx, dy = w-1-x, h-1-y
			case Rotate270:
				dx, dy = y, w-1-x
			default:
				dx, dy = x, y
			}
			dx += offset.X
			dy += offset.Y
			if dx < 0 || dy < 0 || dx >= dstSize.Width || dy >= dstSize.Height {
				continue
			}

			if params.Bleed && c[3] < 0xff {
				c = bleed(c)
			}
			writeTexel(dst, (dy*dstSize.Width+dx)*dstChannels, dstChannels, c)
		}
	}
}

// bleed boosts the red channel, attenuates green and blue and moves alpha halfway to opaque, in
// proportion to the texel's transparency.
func bleed(c [4]uint8) [4]uint8 {
	t := 0xff - int(c[3])
	boost := t / 8
	c[0] = uint8(min(0xff, int(c[0])+boost))
	c[1] = uint8(int(c[1]) * (0xff - boost) / 0xff)
	c[2] = uint8(int(c[2]) * (0xff - boost) / 0xff)
	c[3] = uint8(int(c[3]) + t/2)
	return c
}

func readTexel(pix []byte, i, channels int) [4]uint8 {
	switch channels {
	case 1:
		return [4]uint8{pix[i], pix[i], pix[i], 0xff}
	case 2:
		return [4]uint8{pix[i], pix[i], pix[i], pix[i+1]}
	case 3:
		return [4]uint8{pix[i], pix[i+1], pix[i+2], 0xff}
	}
	return [4]uint8{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

func writeTexel(pix []byte, i, channels int, c [4]uint8) {
	switch channels {
	case 1:
		pix[i] = gray(c)
	case 2:
		pix[i] = gray(c)
		pix[i+1] = c[3]
	case 3:
		copy(pix[i:i+3], c[:3])
	default:
		copy(pix[i:i+4], c[:])
	}
}

func gray(c [4]uint8) uint8 {
	return uint8((int(c[0]) + int(c[1]) + int(c[2])) / 3)
}

// Composite allocates the pixel buffer of every page, with MaxChannels channels, and blits each
// placed image into it. PackImages must have succeeded first.
func (c *Context) Composite() error {
	if !c.packed {
		return ErrNotPacked
	}

	params := BlitParams{AlphaThreshold: c.opts.AlphaThreshold, Bleed: c.opts.Bleed}
	for _, page := range c.pages {
		page.Channels = c.maxChannels
		page.Pixels = make([]byte, page.Width*page.Height*page.Channels)
		for _, id := range page.Images {
			img := c.images[id]
			CopyRGBA(page.Pixels, page.Size(), page.Channels,
				img.Pixels, img.Size(), img.Channels,
				img.Rect.Point, img.Rotation, params)
		}
	}
	return nil
}

// Image returns the composited page as a standard image. Four channel pages share their pixel
// buffer with the result. It returns nil before Context.Composite has run.
func (p *Page) Image() *image.NRGBA {
	if p.Pixels == nil {
		return nil
	}

	bounds := image.Rect(0, 0, p.Width, p.Height)
	switch p.Channels {
	case 4:
		return &image.NRGBA{Pix: p.Pixels, Stride: p.Width * 4, Rect: bounds}
	case 1:
		dst := image.NewNRGBA(bounds)
		src := &image.Gray{Pix: p.Pixels, Stride: p.Width, Rect: bounds}
		draw.Draw(dst, bounds, src, image.Point{}, draw.Src)
		return dst
	}

	dst := image.NewNRGBA(bounds)
	for i := 0; i < p.Width*p.Height; i++ {
		c := readTexel(p.Pixels, i*p.Channels, p.Channels)
		copy(dst.Pix[i*4:i*4+4], c[:])
	}
	return dst
}

// vim: ts=4
