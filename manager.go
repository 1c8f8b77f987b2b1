package deckicon

import (
	"sort"
	"strconv"
	"strings"
)

// Direction tells ReorderLayer which neighbour to swap the stacking order with.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// LayerPatch lists the fields to merge into a layer. Nil fields are left untouched.
type LayerPatch struct {
	Name     *string
	Source   *Source
	Icon     *string
	Image    *string
	Color    *string
	Scale    *float64
	Rotation *float64
	Position *Anchor
	OffsetX  *float64
	OffsetY  *float64
	Visible  *bool
	ZIndex   *int
}

// Apply returns l with the non-nil patch fields merged in.
func (p LayerPatch) Apply(l Layer) Layer {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Source != nil {
		l.Source = *p.Source
	}
	if p.Icon != nil {
		l.Icon = *p.Icon
	}
	if p.Image != nil {
		l.Image = *p.Image
	}
	if p.Color != nil {
		l.Color = *p.Color
	}
	if p.Scale != nil {
		l.Scale = *p.Scale
	}
	if p.Rotation != nil {
		l.Rotation = *p.Rotation
	}
	if p.Position != nil {
		l.Position = *p.Position
	}
	if p.OffsetX != nil {
		l.OffsetX = *p.OffsetX
	}
	if p.OffsetY != nil {
		l.OffsetY = *p.OffsetY
	}
	if p.Visible != nil {
		l.Visible = *p.Visible
	}
	if p.ZIndex != nil {
		l.ZIndex = *p.ZIndex
	}
	return l
}

// Ptr is a small helper for building patches: LayerPatch{Scale: deckicon.Ptr(1.5)}.
func Ptr[T any](v T) *T {
	return &v
}

// AddLayer appends a default layer placed on top of the stack and makes it active.
func (c Composition) AddLayer() Composition {
	n := c.Clone()
	l := DefaultLayer(n.nextID(), layerName(len(n.Layers)))
	l.ZIndex = len(n.Layers)
	n.Layers = append(n.Layers, l)
	n.ActiveID = l.ID
	return n
}

// DeleteLayer removes a layer. Deleting the last remaining layer or an
// unknown id is rejected and the composition is returned unchanged.
// When the active layer is removed the first remaining layer becomes active.
func (c Composition) DeleteLayer(id string) Composition {
	i := c.index(id)
	if i < 0 || len(c.Layers) <= 1 {
		return c
	}
	n := c.Clone()
	n.Layers = append(n.Layers[:i], n.Layers[i+1:]...)
	if n.ActiveID == id {
		n.ActiveID = ""
		if len(n.Layers) > 0 {
			n.ActiveID = n.Layers[0].ID
		}
	}
	return n
}

// ToggleVisibility flips the visibility of a layer.
func (c Composition) ToggleVisibility(id string) Composition {
	i := c.index(id)
	if i < 0 {
		return c
	}
	n := c.Clone()
	n.Layers[i].Visible = !n.Layers[i].Visible
	return n
}

// RenameLayer sets the layer name. Names are not required to be unique.
func (c Composition) RenameLayer(id, name string) Composition {
	return c.UpdateLayer(id, LayerPatch{Name: &name})
}

// SelectLayer makes the given layer the active one.
func (c Composition) SelectLayer(id string) Composition {
	if c.index(id) < 0 {
		return c
	}
	n := c.Clone()
	n.ActiveID = id
	return n
}

// ReorderLayer swaps the stacking order of a layer with its neighbour in
// zIndex order: Up exchanges with the next higher layer, Down with the next
// lower one. Moving past either end of the stack is a no-op. When the two
// layers share a zIndex the whole stack is renumbered 0..n-1 before the swap.
func (c Composition) ReorderLayer(id string, dir Direction) Composition {
	order := stackOrder(c.Layers)

	pos := -1
	for k, i := range order {
		if c.Layers[i].ID == id {
			pos = k
			break
		}
	}
	if pos < 0 {
		return c
	}

	var next int
	switch dir {
	case Up:
		next = pos + 1
	case Down:
		next = pos - 1
	default:
		return c
	}
	if next < 0 || next >= len(order) {
		return c
	}

	n := c.Clone()
	a, b := order[pos], order[next]
	if n.Layers[a].ZIndex == n.Layers[b].ZIndex {
		// Tied layers cannot be swapped, so the stack is renumbered first.
		for k, i := range order {
			n.Layers[i].ZIndex = k
		}
	}
	n.Layers[a].ZIndex, n.Layers[b].ZIndex = n.Layers[b].ZIndex, n.Layers[a].ZIndex
	return n
}

// UpdateLayer merges the patch into the layer matching id.
// Unknown ids are ignored.
func (c Composition) UpdateLayer(id string, p LayerPatch) Composition {
	i := c.index(id)
	if i < 0 {
		return c
	}
	n := c.Clone()
	n.Layers[i] = p.Apply(n.Layers[i])
	return n
}

// PanelOrder returns the layers from the topmost to the bottommost one,
// the order in which a layer list is usually displayed.
func (c Composition) PanelOrder() []Layer {
	order := stackOrder(c.Layers)
	out := make([]Layer, 0, len(order))
	for k := len(order) - 1; k >= 0; k-- {
		out = append(out, c.Layers[order[k]])
	}
	return out
}

// PaintOrder returns the visible layers from back to front:
// ascending by zIndex, ties resolved by the collection order.
func (c Composition) PaintOrder() []Layer {
	out := make([]Layer, 0, len(c.Layers))
	for _, i := range stackOrder(c.Layers) {
		if c.Layers[i].Visible {
			out = append(out, c.Layers[i])
		}
	}
	return out
}

// stackOrder returns the indexes of the layers sorted ascending by zIndex.
// Ties keep the collection order.
func stackOrder(layers []Layer) []int {
	order := make([]int, len(layers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return layers[order[a]].ZIndex < layers[order[b]].ZIndex
	})
	return order
}

// nextID returns a layer id not used by any layer of the composition.
func (c Composition) nextID() string {
	last := 0
	for _, l := range c.Layers {
		if s, ok := strings.CutPrefix(l.ID, "layer-"); ok {
			if v, err := strconv.Atoi(s); err == nil && v > last {
				last = v
			}
		}
	}
	id := layerID(last + 1)
	for k := last + 2; c.index(id) >= 0; k++ {
		id = layerID(k)
	}
	return id
}

func layerID(n int) string {
	return "layer-" + strconv.Itoa(n)
}

func layerName(count int) string {
	return "Layer " + strconv.Itoa(count+1)
}
