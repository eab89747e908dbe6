package atlaspack

import (
	"errors"
	"fmt"
)

// Sentinel errors for the atlaspack package.
var (
	// ErrPackingFailed is returned when an image cannot be placed on any achievable page.
	ErrPackingFailed = errors.New("atlaspack: packing failed")

	// ErrInvalidImage is returned when an image is added with unusable dimensions or pixel data.
	ErrInvalidImage = errors.New("atlaspack: invalid image")

	// ErrNotPacked is returned by passes that require PackImages to have completed first.
	ErrNotPacked = errors.New("atlaspack: images have not been packed")

	// ErrInvalidOptions is matched by every *OptionsError.
	ErrInvalidOptions = errors.New("atlaspack: invalid options")
)

// PackError identifies the image that could not be placed.
type PackError struct {
	// Image is the index of the offending image in insertion order.
	Image int
	// Path is the path/id the image was registered with.
	Path string
	// Size is the original size of the image.
	Size Size
	// PageSize is the largest page size that was attempted.
	PageSize Size
}

func (e *PackError) Error() string {
	return fmt.Sprintf("atlaspack: cannot fit image %d (%q, %s) into page of %s",
		e.Image, e.Path, e.Size, e.PageSize)
}

// Unwrap allows errors.Is(err, ErrPackingFailed).
func (e *PackError) Unwrap() error {
	return ErrPackingFailed
}

// OptionsError represents a configuration validation error.
type OptionsError struct {
	Field  string
	Reason string
}

func (e *OptionsError) Error() string {
	return "atlaspack: invalid options." + e.Field + ": " + e.Reason
}

// Unwrap allows errors.Is(err, ErrInvalidOptions).
func (e *OptionsError) Unwrap() error {
	return ErrInvalidOptions
}

// vim: ts=4
