package deckicon

import (
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// Root composition defaults.
const (
	DefaultTextColor    = "#ffffff"
	DefaultBackground   = "#000000"
	DefaultTextPosition = BottomCenter
)

// Composition is the complete description of an icon: the background,
// the text label and the collection of layers, plus the layer currently
// selected for editing.
//
// A Composition is a value. Every mutating operation returns a new value
// and leaves the receiver untouched, which makes it safe to hand the same
// state to the live preview and to an export running in parallel.
type Composition struct {
	Text         string
	TextColor    string
	TextPosition Anchor
	TextScale    float64
	Background   string
	Layers       []Layer
	ActiveID     string
}

// NewComposition returns the initial state: an empty label at the bottom
// and a single default layer, which is also the active one.
func NewComposition() Composition {
	first := DefaultLayer(layerID(1), layerName(0))
	return Composition{
		Text:         "",
		TextColor:    DefaultTextColor,
		TextPosition: DefaultTextPosition,
		TextScale:    1,
		Background:   DefaultBackground,
		Layers:       []Layer{first},
		ActiveID:     first.ID,
	}
}

// Clone returns a deep copy of the composition.
func (c Composition) Clone() Composition {
	var dst Composition
	if err := copier.CopyWithOption(&dst, &c, copier.Option{DeepCopy: true}); err != nil {
		Logger().Debug("deep copy failed, copying layers manually", zap.Error(err))
		dst = c
		dst.Layers = append([]Layer(nil), c.Layers...)
	}
	return dst
}

// Layer returns the layer with the given id.
func (c Composition) Layer(id string) (Layer, bool) {
	if i := c.index(id); i >= 0 {
		return c.Layers[i], true
	}
	return Layer{}, false
}

// Active returns the layer currently selected for editing.
func (c Composition) Active() (Layer, bool) {
	return c.Layer(c.ActiveID)
}

func (c Composition) index(id string) int {
	for i, l := range c.Layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// SetText changes the label.
func (c Composition) SetText(text string) Composition {
	n := c.Clone()
	n.Text = text
	return n
}

// SetTextColor changes the label color (#rrggbb).
func (c Composition) SetTextColor(hex string) Composition {
	n := c.Clone()
	n.TextColor = hex
	return n
}

// SetTextPosition moves the label to another anchor.
func (c Composition) SetTextPosition(a Anchor) Composition {
	n := c.Clone()
	n.TextPosition = a
	return n
}

// SetTextScale changes the label scale factor.
func (c Composition) SetTextScale(s float64) Composition {
	n := c.Clone()
	n.TextScale = s
	return n
}

// SetBackground changes the background color (#rrggbb).
func (c Composition) SetBackground(hex string) Composition {
	n := c.Clone()
	n.Background = hex
	return n
}
