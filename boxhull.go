package atlaspack

import "golang.org/x/image/math/f32"

// HullFromImage decomposes the occupied texels of mask into axis aligned boxes and returns them
// triangulated, six vertices per box. Coordinates use the same normalized space as
// ConvexHull.Vertices. An empty mask, or one shorter than width*height, yields no vertices.
//
// Boxes are found greedily in row-major order. From each unvisited occupied texel a box grows
// right while the whole new column is occupied and down while the whole new row is occupied.
// When both are possible but the new corner texel is empty, only the right expansion is taken.
func HullFromImage(mask []byte, width, height int) []f32.Vec2 {
	if width <= 0 || height <= 0 || len(mask) < width*height {
		return nil
	}

	visited := make([]bool, width*height)
	free := func(x, y int) bool {
		i := y*width + x
		return mask[i] != 0 && !visited[i]
	}

	var out []f32.Vec2
	sx, sy := 1/float32(width), 1/float32(height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !free(x, y) {
				continue
			}

			w, h := 1, 1
			for {
				right := x+w < width
				for j := y; right && j < y+h; j++ {
					right = free(x+w, j)
				}
				down := y+h < height
				for i := x; down && i < x+w; i++ {
					down = free(i, y+h)
				}
				if right && down && !free(x+w, y+h) {
					down = false
				}
				if !right && !down {
					break
				}
				if right {
					w++
				}
				if down {
					h++
				}
			}

			for j := y; j < y+h; j++ {
				for i := x; i < x+w; i++ {
					visited[j*width+i] = true
				}
			}
			out = boxVertices(out,
				float32(x)*sx-0.5, float32(y)*sy-0.5,
				float32(x+w)*sx-0.5, float32(y+h)*sy-0.5)
		}
	}
	return out
}

// vim: ts=4
