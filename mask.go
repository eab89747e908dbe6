package atlaspack

// OccupancyMask returns one byte per texel: 1 where the texel is not fully transparent, 0
// elsewhere. Images without an alpha channel (1 or 3 channels) are fully occupied.
func OccupancyMask(pixels []byte, width, height, channels int) []byte {
	mask := make([]byte, width*height)
	alpha := alphaIndex(channels)
	if alpha < 0 {
		for i := range mask {
			mask[i] = 1
		}
		return mask
	}

	for i := range mask {
		if pixels[i*channels+alpha] != 0 {
			mask[i] = 1
		}
	}
	return mask
}

// DilateMask returns a copy of mask where a texel is set if any texel within radius texels on
// both axes (a square kernel) is set. A radius of 0 returns an unmodified copy.
func DilateMask(mask []byte, width, height, radius int) []byte {
	out := make([]byte, len(mask))
	if radius <= 0 {
		copy(out, mask)
		return out
	}

	// The square kernel is separable: dilate rows, then columns.
	rows := make([]byte, len(mask))
	for y := 0; y < height; y++ {
		row := mask[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			for k := max(0, x-radius); k <= min(width-1, x+radius); k++ {
				if row[k] != 0 {
					rows[y*width+x] = 1
					break
				}
			}
		}
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			for k := max(0, y-radius); k <= min(height-1, y+radius); k++ {
				if rows[k*width+x] != 0 {
					out[y*width+x] = 1
					break
				}
			}
		}
	}
	return out
}

// maskEmpty tests whether no texel of mask is set.
func maskEmpty(mask []byte) bool {
	for _, v := range mask {
		if v != 0 {
			return false
		}
	}
	return true
}

// alphaIndex returns the index of the alpha channel within a texel, or -1 when there is none.
func alphaIndex(channels int) int {
	switch channels {
	case 2:
		return 1
	case 4:
		return 3
	}
	return -1
}

// vim: ts=4
