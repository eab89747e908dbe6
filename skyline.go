package atlaspack

import (
	"fmt"
	"slices"
)

// skylineNode is one rooftop segment of the packing profile: the span [X, X+Width) is occupied
// from the top of the page down to Y.
type skylineNode struct {
	X, Y, Width int
}

// skylineBin is the skyline packer's view of one page. Its nodes always partition
// [0, width) in ascending order, and no two adjacent nodes share the same Y.
type skylineBin struct {
	width     int
	height    int
	minWaste  bool
	skyline   []skylineNode
	afterEach func(*skylineBin, Rect)
}

func newSkylineBin(width, height int, heuristic Heuristic) *skylineBin {
	if width <= 0 || height <= 0 {
		panic("width and height must be greater than 0")
	}
	b := &skylineBin{
		width:    width,
		height:   height,
		minWaste: heuristic&fitMask == MinWaste,
		skyline:  make([]skylineNode, 0, 16),
	}
	b.skyline = append(b.skyline, skylineNode{X: 0, Y: 0, Width: width})
	return b
}

// testFit checks whether a width*height rectangle can rest on the skyline starting at node
// index. On success y holds the height the rectangle rests on.
func (b *skylineBin) testFit(index, width, height int) (y int, ok bool) {
	x := b.skyline[index].X
	if x+width > b.width {
		return 0, false
	}

	widthLeft := width
	i := index
	y = b.skyline[index].Y
	for widthLeft > 0 {
		y = max(y, b.skyline[i].Y)
		if y+height > b.height {
			return 0, false
		}
		widthLeft -= b.skyline[i].Width
		i++
	}
	return y, true
}

// computeWaste returns the area that would be left unreachable below a rectangle of the given
// width resting at y on node index.
func (b *skylineBin) computeWaste(index, width, y int) int {
	wastedArea := 0
	rectLeft := b.skyline[index].X
	rectRight := rectLeft + width

	for ; index < len(b.skyline) && b.skyline[index].X < rectRight; index++ {
		leftSide := b.skyline[index].X
		rightSide := min(rectRight, leftSide+b.skyline[index].Width)
		wastedArea += (rightSide - leftSide) * (y - b.skyline[index].Y)
	}
	return wastedArea
}

// score returns the ranking of a rectangle placed on node index at height y.
func (b *skylineBin) score(index, width, height, y int) (int, int) {
	if b.minWaste {
		return b.computeWaste(index, width, y), y + height
	}
	// Ties on height go to the narrowest node, filling crevices before open space.
	return y + height, b.skyline[index].Width
}

func (b *skylineBin) find(width, height int, rotate bool) (candidate, bool) {
	best := noCandidate()

	for i := range b.skyline {
		if y, ok := b.testFit(i, width, height); ok {
			if s1, s2 := b.score(i, width, height, y); best.better(s1, s2) {
				best = candidate{Rect: NewRect(b.skyline[i].X, y, width, height), index: i, score1: s1, score2: s2}
			}
		}
		if !rotate {
			continue
		}
		if y, ok := b.testFit(i, height, width); ok {
			if s1, s2 := b.score(i, height, width, y); best.better(s1, s2) {
				best = candidate{Rect: NewRect(b.skyline[i].X, y, height, width), index: i, score1: s1, score2: s2}
			}
		}
	}

	return best, best.index >= 0
}

func (b *skylineBin) place(c candidate) {
	b.addLevel(c.index, c.Rect)
	if b.afterEach != nil {
		b.afterEach(b, c.Rect)
	}
}

// addLevel inserts a node for the top edge of rect at index, trims the nodes it now covers and
// merges neighbours of equal height.
func (b *skylineBin) addLevel(index int, rect Rect) {
	newNode := skylineNode{X: rect.X, Y: rect.Y + rect.Height, Width: rect.Width}
	b.skyline = slices.Insert(b.skyline, index, newNode)

	for i := index + 1; i < len(b.skyline); i++ {
		prev := b.skyline[i-1]
		if b.skyline[i].X >= prev.X+prev.Width {
			break
		}
		shrink := prev.X + prev.Width - b.skyline[i].X
		b.skyline[i].X += shrink
		b.skyline[i].Width -= shrink

		if b.skyline[i].Width > 0 {
			break
		}
		b.skyline = slices.Delete(b.skyline, i, i+1)
		i--
	}

	b.merge(index)
}

// merge joins the node at index with neighbours of the same height, scanning backwards first
// and then forwards.
func (b *skylineBin) merge(index int) {
	for index > 0 && b.skyline[index-1].Y == b.skyline[index].Y {
		b.skyline[index-1].Width += b.skyline[index].Width
		b.skyline = slices.Delete(b.skyline, index, index+1)
		index--
	}
	for index+1 < len(b.skyline) && b.skyline[index+1].Y == b.skyline[index].Y {
		b.skyline[index].Width += b.skyline[index+1].Width
		b.skyline = slices.Delete(b.skyline, index+1, index+2)
	}
}

func (b *skylineBin) grow(width, height int) {
	if width > b.width {
		b.skyline = append(b.skyline, skylineNode{X: b.width, Y: 0, Width: width - b.width})
		b.merge(len(b.skyline) - 1)
		b.width = width
	}
	b.height = max(b.height, height)
}

// validate checks the partition invariant of the skyline.
func (b *skylineBin) validate() error {
	x := 0
	for i, node := range b.skyline {
		if node.X != x {
			return fmt.Errorf("node %d starts at %d, expected %d", i, node.X, x)
		}
		if node.Width <= 0 {
			return fmt.Errorf("node %d has width %d", i, node.Width)
		}
		if i > 0 && b.skyline[i-1].Y == node.Y {
			return fmt.Errorf("nodes %d and %d share height %d", i-1, i, node.Y)
		}
		x += node.Width
	}
	if x != b.width {
		return fmt.Errorf("skyline spans %d, page width is %d", x, b.width)
	}
	return nil
}

// SkylinePacker places images with the skyline bottom-left heuristic (or its min-waste variant)
// in the order they were added.
type SkylinePacker struct {
	packerBase
	// afterInsert, when set, is attached to every page and called after each insertion with the
	// reserved rectangle.
	afterInsert func(*skylineBin, Rect)
}

// NewSkylinePacker creates a skyline strategy. Heuristics other than SkylineBL and
// SkylineMinWaste fall back to SkylineBL.
func NewSkylinePacker(heuristic Heuristic) *SkylinePacker {
	if heuristic.Algorithm() != Skyline || heuristic.Validate() != nil {
		heuristic = SkylineBL
	}
	return &SkylinePacker{packerBase: packerBase{heuristic: heuristic}}
}

// PackImages places every image of ctx.
func (p *SkylinePacker) PackImages(ctx *Context) error {
	return packPages(ctx, func(width, height int) bin {
		b := newSkylineBin(width, height, p.heuristic)
		b.afterEach = p.afterInsert
		return b
	})
}

// vim: ts=4
