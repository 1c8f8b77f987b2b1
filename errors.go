package deckicon

import "errors"

var (
	// ErrUnsupportedImage is returned for uploads which are not PNG or JPEG
	// images, or which cannot be decoded.
	ErrUnsupportedImage = errors.New("unsupported image")
	// ErrSurfaceUnavailable is returned when the offscreen surface used
	// by an export cannot be created.
	ErrSurfaceUnavailable = errors.New("export surface unavailable")
	// ErrRasterize is returned when painting or encoding the export fails.
	ErrRasterize = errors.New("rasterization failed")
	// ErrInvalidColor is returned by ParseColor for malformed color values.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInvalidGlyph is returned for SVG icons that cannot be turned into
	// a glyph outline.
	ErrInvalidGlyph = errors.New("invalid glyph")
)
