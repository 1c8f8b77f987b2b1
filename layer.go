package deckicon

import "strings"

// Anchor is one of the nine symbolic positions of the 3×3 placement grid.
// It is used both for the icon layers and for the text label.
type Anchor string

const (
	TopLeft      Anchor = "top-left"
	TopCenter    Anchor = "top-center"
	TopRight     Anchor = "top-right"
	MiddleLeft   Anchor = "middle-left"
	MiddleCenter Anchor = "middle-center"
	MiddleRight  Anchor = "middle-right"
	BottomLeft   Anchor = "bottom-left"
	BottomCenter Anchor = "bottom-center"
	BottomRight  Anchor = "bottom-right"
)

// Anchors lists the supported anchors in grid order (row by row).
var Anchors = []Anchor{
	TopLeft, TopCenter, TopRight,
	MiddleLeft, MiddleCenter, MiddleRight,
	BottomLeft, BottomCenter, BottomRight,
}

// Valid reports whether a is one of the nine grid anchors.
func (a Anchor) Valid() bool {
	for _, v := range Anchors {
		if v == a {
			return true
		}
	}
	return false
}

// split returns the vertical ("top", "middle", "bottom") and the horizontal
// ("left", "center", "right") component of the anchor.
// Unknown anchors are treated as middle-center.
func (a Anchor) split() (string, string) {
	if !a.Valid() {
		return "middle", "center"
	}
	v, h, _ := strings.Cut(string(a), "-")
	return v, h
}

// Source selects which visual content of a layer is active.
type Source string

const (
	SourceIcon  Source = "icon"
	SourceImage Source = "image"
)

// Default values of a newly created layer.
const (
	DefaultGlyph      = "IconHome"
	DefaultLayerColor = "#ffffff"
)

// Value ranges accepted by the controls producing layer updates.
// The renderers clamp out of range values instead of failing.
const (
	MinScale     = 0.1
	MaxScale     = 3.0
	MinRotation  = -360.0
	MaxRotation  = 360.0
	MaxOffset    = 120.0
	MinTextScale = 0.5
	MaxTextScale = 3.0
)

// Layer is one visual element of the composition: either a glyph picked
// from the registry or an uploaded image, with its own placement,
// scale, rotation, tint, visibility and stacking order.
//
// Image holds the uploaded picture as a data URL. It is kept even when
// the layer switches to the icon source, so switching back restores it.
type Layer struct {
	ID       string
	Name     string
	Source   Source
	Icon     string
	Image    string
	Color    string
	Scale    float64
	Rotation float64
	Position Anchor
	OffsetX  float64
	OffsetY  float64
	Visible  bool
	ZIndex   int
}

// DefaultLayer returns a visible, untransformed layer displaying the default glyph
// in the middle of the canvas.
func DefaultLayer(id, name string) Layer {
	return Layer{
		ID:       id,
		Name:     name,
		Source:   SourceIcon,
		Icon:     DefaultGlyph,
		Color:    DefaultLayerColor,
		Scale:    1,
		Rotation: 0,
		Position: MiddleCenter,
		Visible:  true,
		ZIndex:   0,
	}
}

// HasImage reports whether an uploaded image is attached to the layer,
// regardless of the active source.
func (l Layer) HasImage() bool {
	return l.Image != ""
}
