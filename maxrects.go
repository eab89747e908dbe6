package atlaspack

import "math"

type findFunc func(b *maxRectsBin, width, height int, rotate bool) candidate

// maxRectsBin is the MaxRects view of one page: every maximal free rectangle is tracked.
type maxRectsBin struct {
	width        int
	height       int
	findNode     findFunc
	packed       []Rect
	newLastSize  int
	newFreeRects []Rect
	freeRects    []Rect
}

func newMaxRectsBin(width, height int, heuristic Heuristic) *maxRectsBin {
	if width <= 0 || height <= 0 {
		panic("width and height must be greater than 0")
	}

	b := &maxRectsBin{width: width, height: height}
	switch heuristic & fitMask {
	case BestAreaFit:
		b.findNode = findPositionBestAreaFit
	case BottomLeft:
		b.findNode = findPositionBottomLeft
	case ContactPoint:
		b.findNode = findPositionContactPoint
	case BestLongSideFit:
		b.findNode = findPositionBestLongSideFit
	default: // BestShortSideFit
		b.findNode = findPositionBestShortSideFit
	}

	b.freeRects = append(b.freeRects, NewRect(0, 0, width, height))
	return b
}

func (b *maxRectsBin) find(width, height int, rotate bool) (candidate, bool) {
	c := b.findNode(b, width, height, rotate)
	return c, c.index >= 0
}

func (b *maxRectsBin) place(c candidate) {
	node := c.Rect
	for i := 0; i < len(b.freeRects); {
		if b.splitFreeNode(&b.freeRects[i], &node) {
			last := len(b.freeRects) - 1
			b.freeRects[i] = b.freeRects[last]
			b.freeRects = b.freeRects[:last]
		} else {
			i++
		}
	}
	b.pruneFreeList()
	b.packed = append(b.packed, node)
}

// grow extends the free rectangles touching the old right and bottom edges into the new area and
// adds the new strips as free space.
func (b *maxRectsBin) grow(width, height int) {
	width, height = max(width, b.width), max(height, b.height)
	if width == b.width && height == b.height {
		return
	}

	for i := range b.freeRects {
		r := &b.freeRects[i]
		if r.Right() == b.width {
			r.Width = width - r.X
		}
		if r.Bottom() == b.height {
			r.Height = height - r.Y
		}
	}
	if width > b.width {
		b.freeRects = append(b.freeRects, NewRect(b.width, 0, width-b.width, height))
	}
	if height > b.height {
		b.freeRects = append(b.freeRects, NewRect(0, b.height, width, height-b.height))
	}
	b.width, b.height = width, height

	// Drop free rectangles that are contained by others.
	for i := 0; i < len(b.freeRects); i++ {
		for j := i + 1; j < len(b.freeRects); {
			if b.freeRects[i].ContainsRect(b.freeRects[j]) {
				b.freeRects = append(b.freeRects[:j], b.freeRects[j+1:]...)
				continue
			}
			if b.freeRects[j].ContainsRect(b.freeRects[i]) {
				b.freeRects = append(b.freeRects[:i], b.freeRects[i+1:]...)
				i--
				break
			}
			j++
		}
	}
}

// tryOrientations calls score for the upright and, when rotate is set, the swapped orientation
// of every free rectangle the size fits into, keeping the lowest scoring placement.
func (b *maxRectsBin) tryOrientations(width, height int, rotate bool, score func(free Rect, w, h int) (int, int)) candidate {
	best := noCandidate()
	for i, freeRect := range b.freeRects {
		if freeRect.Width >= width && freeRect.Height >= height {
			if s1, s2 := score(freeRect, width, height); best.better(s1, s2) {
				best = candidate{Rect: NewRect(freeRect.X, freeRect.Y, width, height), index: i, score1: s1, score2: s2}
			}
		}
		if rotate && freeRect.Width >= height && freeRect.Height >= width {
			if s1, s2 := score(freeRect, height, width); best.better(s1, s2) {
				best = candidate{Rect: NewRect(freeRect.X, freeRect.Y, height, width), index: i, score1: s1, score2: s2}
			}
		}
	}
	return best
}

func findPositionBottomLeft(b *maxRectsBin, width, height int, rotate bool) candidate {
	return b.tryOrientations(width, height, rotate, func(free Rect, w, h int) (int, int) {
		return free.Y + h, free.X
	})
}

func findPositionBestShortSideFit(b *maxRectsBin, width, height int, rotate bool) candidate {
	return b.tryOrientations(width, height, rotate, func(free Rect, w, h int) (int, int) {
		leftoverHoriz := abs(free.Width - w)
		leftoverVert := abs(free.Height - h)
		return min(leftoverHoriz, leftoverVert), max(leftoverHoriz, leftoverVert)
	})
}

func findPositionBestLongSideFit(b *maxRectsBin, width, height int, rotate bool) candidate {
	return b.tryOrientations(width, height, rotate, func(free Rect, w, h int) (int, int) {
		leftoverHoriz := abs(free.Width - w)
		leftoverVert := abs(free.Height - h)
		return max(leftoverHoriz, leftoverVert), min(leftoverHoriz, leftoverVert)
	})
}

func findPositionBestAreaFit(b *maxRectsBin, width, height int, rotate bool) candidate {
	return b.tryOrientations(width, height, rotate, func(free Rect, w, h int) (int, int) {
		areaFit := free.Width*free.Height - w*h
		return areaFit, min(abs(free.Width-w), abs(free.Height-h))
	})
}

// Contact scores are negated so that more contact ranks lower.
func findPositionContactPoint(b *maxRectsBin, width, height int, rotate bool) candidate {
	return b.tryOrientations(width, height, rotate, func(free Rect, w, h int) (int, int) {
		return -b.contactPointScoreNode(free.X, free.Y, w, h), math.MaxInt - 1
	})
}

// Returns 0 if the two intervals i1 and i2 are disjoint, or the length of their overlap otherwise
func commonIntervalLength(i1start, i1end, i2start, i2end int) int {
	if i1end < i2start || i2end < i1start {
		return 0
	}
	return min(i1end, i2end) - max(i1start, i2start)
}

func (b *maxRectsBin) contactPointScoreNode(x, y, width, height int) int {
	score := 0

	if x == 0 || x+width == b.width {
		score += height
	}
	if y == 0 || y+height == b.height {
		score += width
	}

	for _, used := range b.packed {
		if used.X == x+width || used.X+used.Width == x {
			score += commonIntervalLength(used.Y, used.Y+used.Height, y, y+height)
		}
		if used.Y == y+height || used.Y+used.Height == y {
			score += commonIntervalLength(used.X, used.X+used.Width, x, x+width)
		}
	}
	return score
}

func (b *maxRectsBin) insertNewFreeRectangle(newFreeRect Rect) {
	for i := 0; i < b.newLastSize; {
		// This new free rectangle is already accounted for?
		if b.newFreeRects[i].ContainsRect(newFreeRect) {
			return
		}

		// Does this new free rectangle obsolete a previous new free rectangle?
		if newFreeRect.ContainsRect(b.newFreeRects[i]) {
			// Remove i'th new free rectangle, retaining the order of the older vs newest free
			// rectangles that splitFreeNode may still be placing.
			b.newLastSize--
			b.newFreeRects[i] = b.newFreeRects[b.newLastSize]

			last := len(b.newFreeRects) - 1
			b.newFreeRects[b.newLastSize] = b.newFreeRects[last]
			b.newFreeRects = b.newFreeRects[:last]
			continue
		}

		i++
	}

	b.newFreeRects = append(b.newFreeRects, newFreeRect)
}

func (b *maxRectsBin) splitFreeNode(freeNode, usedNode *Rect) bool {
	if !freeNode.Intersects(*usedNode) {
		return false
	}

	b.newLastSize = len(b.newFreeRects)

	if usedNode.X < freeNode.X+freeNode.Width && usedNode.X+usedNode.Width > freeNode.X {
		// New node at the top side of the used node.
		if usedNode.Y > freeNode.Y && usedNode.Y < freeNode.Y+freeNode.Height {
			newNode := *freeNode
			newNode.Height = usedNode.Y - newNode.Y
			b.insertNewFreeRectangle(newNode)
		}

		// New node at the bottom side of the used node.
		if usedNode.Y+usedNode.Height < freeNode.Y+freeNode.Height {
			newNode := *freeNode
			newNode.Y = usedNode.Y + usedNode.Height
			newNode.Height = freeNode.Y + freeNode.Height - (usedNode.Y + usedNode.Height)
			b.insertNewFreeRectangle(newNode)
		}
	}

	if usedNode.Y < freeNode.Y+freeNode.Height && usedNode.Y+usedNode.Height > freeNode.Y {
		// New node at the left side of the used node.
		if usedNode.X > freeNode.X && usedNode.X < freeNode.X+freeNode.Width {
			newNode := *freeNode
			newNode.Width = usedNode.X - newNode.X
			b.insertNewFreeRectangle(newNode)
		}

		// New node at the right side of the used node.
		if usedNode.X+usedNode.Width < freeNode.X+freeNode.Width {
			newNode := *freeNode
			newNode.X = usedNode.X + usedNode.Width
			newNode.Width = freeNode.X + freeNode.Width - (usedNode.X + usedNode.Width)
			b.insertNewFreeRectangle(newNode)
		}
	}

	return true
}

func (b *maxRectsBin) pruneFreeList() {
	// Test all newly introduced free rectangles against old free rectangles.
	for i := 0; i < len(b.freeRects); i++ {
		for j := 0; j < len(b.newFreeRects); {
			if b.freeRects[i].ContainsRect(b.newFreeRects[j]) {
				last := len(b.newFreeRects) - 1
				b.newFreeRects[j] = b.newFreeRects[last]
				b.newFreeRects = b.newFreeRects[:last]
				continue
			}
			j++
		}
	}

	// Merge new and old free rectangles to the group of old free rectangles.
	b.freeRects = append(b.freeRects, b.newFreeRects...)
	b.newFreeRects = b.newFreeRects[:0]
}

// MaxRectsPacker places images in insertion order by tracking the maximal free rectangles of
// each page.
type MaxRectsPacker struct {
	packerBase
}

// NewMaxRectsPacker creates a MaxRects strategy. Heuristics that are not valid for MaxRects fall
// back to MaxRectsBSSF.
func NewMaxRectsPacker(heuristic Heuristic) *MaxRectsPacker {
	if heuristic.Algorithm() != MaxRects || heuristic.Validate() != nil {
		heuristic = MaxRectsBSSF
	}
	return &MaxRectsPacker{packerBase: packerBase{heuristic: heuristic}}
}

// PackImages places every image of ctx.
func (p *MaxRectsPacker) PackImages(ctx *Context) error {
	return packPages(ctx, func(width, height int) bin {
		return newMaxRectsBin(width, height, p.heuristic)
	})
}

func abs(x int) int {
	if x >= 0 {
		return x
	}
	return -x
}

// vim: ts=4
