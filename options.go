package atlaspack

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// MaxTextureSize is the default ceiling for page growth. It matches the maximum texture size of
// most current GPUs.
const MaxTextureSize = 8192

// Options holds the global knobs of a packing run.
type Options struct {
	// PageSize is the fixed width/height of every page. A value of 0 selects auto-sizing, where a
	// single page grows as needed instead of spilling over into new pages.
	//
	// Default: 0
	PageSize int `toml:"page_size"`

	// MaxPageSize caps page growth in auto-sizing mode, and the fixed page size. An image that
	// cannot fit on a page of this size fails with a *PackError.
	//
	// Default: MaxTextureSize
	MaxPageSize int `toml:"max_page_size"`

	// Padding is the number of empty texels reserved to the right of and below every image, so
	// neighbouring images never touch. Images on a fixed page must fit including their padding.
	//
	// Default: 0
	Padding int `toml:"padding"`

	// AllowRotate permits non-square images to be placed rotated by 90 degrees.
	//
	// Default: true
	AllowRotate bool `toml:"allow_rotate"`

	// AlphaThreshold is the alpha value at or below which texels are treated as transparent when
	// compositing.
	//
	// Default: 0
	AlphaThreshold uint8 `toml:"alpha_threshold"`

	// DilateRadius is the kernel radius used to conservatively grow occupancy masks before hulls
	// are extracted.
	//
	// Default: 0
	DilateRadius int `toml:"dilate_radius"`

	// NumHullPlanes is the vertex count requested from the plane hull.
	//
	// Default: 8
	NumHullPlanes int `toml:"num_hull_planes"`

	// Bleed pushes semi-transparent edge texels towards opaque when compositing, so bilinear
	// sampling does not pick up the page background.
	//
	// Default: true
	Bleed bool `toml:"bleed"`
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		PageSize:      0,
		MaxPageSize:   MaxTextureSize,
		AllowRotate:   true,
		NumHullPlanes: 8,
		Bleed:         true,
	}
}

// Validate checks if the configuration is valid.
func (o *Options) Validate() error {
	if o.PageSize < 0 {
		return &OptionsError{Field: "PageSize", Reason: "must be non-negative"}
	}
	if o.MaxPageSize < 1 {
		return &OptionsError{Field: "MaxPageSize", Reason: "must be at least 1"}
	}
	if o.PageSize > o.MaxPageSize {
		return &OptionsError{Field: "PageSize", Reason: fmt.Sprintf("must be at most MaxPageSize (%d)", o.MaxPageSize)}
	}
	if o.Padding < 0 {
		return &OptionsError{Field: "Padding", Reason: "must be non-negative"}
	}
	if o.DilateRadius < 0 {
		return &OptionsError{Field: "DilateRadius", Reason: "must be non-negative"}
	}
	if o.NumHullPlanes < 3 {
		return &OptionsError{Field: "NumHullPlanes", Reason: "must be at least 3"}
	}
	return nil
}

// DecodeOptions reads TOML-encoded options from r. Keys that are not present keep their default
// values, unknown keys are rejected.
func DecodeOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.NewDecoder(r).Decode(&opts)
	if err != nil {
		return opts, fmt.Errorf("atlaspack: decoding options: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, &OptionsError{Field: undecoded[0].String(), Reason: "unknown key"}
	}
	return opts, opts.Validate()
}

// LoadOptions reads TOML-encoded options from the file at path.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return opts, fmt.Errorf("atlaspack: loading options from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, &OptionsError{Field: undecoded[0].String(), Reason: "unknown key"}
	}
	return opts, opts.Validate()
}

// Encode writes the options to w in TOML format.
func (o *Options) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(o)
}

// vim: ts=4
