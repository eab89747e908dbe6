package atlaspack

import (
	"errors"
	"strings"
)

// Heuristic selects a packing strategy. The low nibble names the algorithm, the next nibble the
// rule used to rank candidate positions. Combine one of each with OR, or use a preset.
type Heuristic uint16

// Algorithms.
const (
	// MaxRects tracks every maximal free rectangle of a page. Denser, but slower per image.
	MaxRects Heuristic = 0x0
	// Skyline tracks only the top profile of a page. Fast, and cheap to grow.
	Skyline Heuristic = 0x1
)

// Candidate ranking rules. Each lists the algorithms it is valid with.
const (
	// BestShortSideFit (BSSF) minimizes the shorter leftover side of the free rectangle.
	// MaxRects only.
	BestShortSideFit Heuristic = 0x00
	// BestLongSideFit (BLSF) minimizes the longer leftover side of the free rectangle.
	// MaxRects only.
	BestLongSideFit Heuristic = 0x10
	// BestAreaFit (BAF) picks the smallest free rectangle the image fits into. MaxRects only.
	BestAreaFit Heuristic = 0x20
	// BottomLeft (BL) minimizes the resulting top edge, then picks the narrowest skyline node or
	// the leftmost free rectangle. MaxRects and Skyline.
	BottomLeft Heuristic = 0x30
	// ContactPoint (CP) maximizes the edge length shared with the page border and placed images.
	// MaxRects only.
	ContactPoint Heuristic = 0x40
	// MinWaste (MW) minimizes the area left unreachable below the image, then the resulting top
	// edge. Skyline only.
	MinWaste Heuristic = 0x80
)

const (
	typeMask = 0x000F
	fitMask  = 0x00F0
)

// Presets.
const (
	MaxRectsBSSF    = MaxRects | BestShortSideFit
	MaxRectsBLSF    = MaxRects | BestLongSideFit
	MaxRectsBAF     = MaxRects | BestAreaFit
	MaxRectsBL      = MaxRects | BottomLeft
	MaxRectsCP      = MaxRects | ContactPoint
	SkylineBL       = Skyline | BottomLeft
	SkylineMinWaste = Skyline | MinWaste
)

// Algorithm returns the algorithm portion of the bitmask.
func (e Heuristic) Algorithm() Heuristic {
	return e & typeMask
}

// Bin returns the ranking rule portion of the bitmask.
func (e Heuristic) Bin() Heuristic {
	return e & fitMask
}

var (
	errAlgo = errors.New("invalid algorithm type specified")
	errBin  = errors.New("bin method heuristic is invalid for algorithm type")
)

// Validate returns nil when the ranking rule is valid for the algorithm.
//
// Strategies never fail on an invalid heuristic, they fall back to their default preset.
func (e Heuristic) Validate() error {
	switch e.Algorithm() {
	case MaxRects:
		switch e.Bin() {
		case BestShortSideFit, BestLongSideFit, BestAreaFit, BottomLeft, ContactPoint:
			return nil
		}
	case Skyline:
		switch e.Bin() {
		case BottomLeft, MinWaste:
			return nil
		}
	default:
		return errAlgo
	}
	return errBin
}

var binNames = map[Heuristic]string{
	BestShortSideFit: "BSSF",
	BestLongSideFit:  "BLSF",
	BestAreaFit:      "BAF",
	BottomLeft:       "BL",
	ContactPoint:     "CP",
	MinWaste:         "MW",
}

// String returns the heuristic as "Algorithm-Rule", for example "Skyline-BL".
func (e Heuristic) String() string {
	var sb strings.Builder
	switch e.Algorithm() {
	case MaxRects:
		sb.WriteString("MaxRects")
	case Skyline:
		sb.WriteString("Skyline")
	}
	if bin, ok := binNames[e.Bin()]; ok {
		if sb.Len() > 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(bin)
	}
	return sb.String()
}

// vim: ts=4
