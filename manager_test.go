package deckicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zIndexes(c Composition) map[string]int {
	m := make(map[string]int, len(c.Layers))
	for _, l := range c.Layers {
		m[l.ID] = l.ZIndex
	}
	return m
}

func layerIDs(layers []Layer) []string {
	ids := make([]string, len(layers))
	for i, l := range layers {
		ids[i] = l.ID
	}
	return ids
}

func TestManager_NewComposition(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition()
	require.Len(t, c.Layers, 1)

	l := c.Layers[0]
	assert.Equal("layer-1", l.ID)
	assert.Equal("Layer 1", l.Name)
	assert.Equal(l.ID, c.ActiveID)
	assert.Equal(DefaultLayer("layer-1", "Layer 1"), l)
	assert.Equal(BottomCenter, c.TextPosition)
	assert.Equal(1.0, c.TextScale)
	assert.Equal("#000000", c.Background)
}

func TestManager_AddLayer(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition()
	n := c.AddLayer().AddLayer()

	assert.Len(c.Layers, 1, "the receiver must not change")
	require.Len(t, n.Layers, 3)
	assert.Equal([]string{"layer-1", "layer-2", "layer-3"}, []string{n.Layers[0].ID, n.Layers[1].ID, n.Layers[2].ID})
	assert.Equal("Layer 3", n.Layers[2].Name)
	assert.Equal(2, n.Layers[2].ZIndex)
	assert.Equal("layer-3", n.ActiveID)
}

func TestManager_AddLayerUniqueID(t *testing.T) {
	c := NewComposition().AddLayer().AddLayer()
	c = c.DeleteLayer("layer-2")
	c = c.AddLayer()

	seen := make(map[string]bool)
	for _, l := range c.Layers {
		assert.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
	}
	assert.Equal(t, "layer-4", c.ActiveID)
}

func TestManager_DeleteLastLayer(t *testing.T) {
	c := NewComposition()
	n := c.DeleteLayer(c.Layers[0].ID)

	assert.Len(t, n.Layers, 1)
	assert.Equal(t, c, n)
}

func TestManager_DeleteLayer(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition().AddLayer().AddLayer()
	require.Equal(t, "layer-3", c.ActiveID)

	n := c.DeleteLayer("layer-3")
	assert.Len(n.Layers, 2)
	assert.Equal("layer-1", n.ActiveID, "the first remaining layer becomes active")

	n = c.SelectLayer("layer-2").DeleteLayer("layer-1")
	assert.Equal("layer-2", n.ActiveID, "deleting an inactive layer keeps the selection")

	assert.Equal(c, c.DeleteLayer("unknown"))
}

func TestManager_ToggleVisibility(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition().AddLayer()
	n := c.ToggleVisibility("layer-1")

	l, ok := n.Layer("layer-1")
	require.True(t, ok)
	assert.False(l.Visible)
	assert.Equal(zIndexes(c), zIndexes(n))
	assert.Equal(c.ActiveID, n.ActiveID)

	n = n.ToggleVisibility("layer-1")
	assert.Equal(c, n)
}

func TestManager_RenameLayer(t *testing.T) {
	c := NewComposition().AddLayer()
	c = c.RenameLayer("layer-1", "Logo").RenameLayer("layer-2", "Logo")

	assert.Equal(t, "Logo", c.Layers[0].Name)
	assert.Equal(t, "Logo", c.Layers[1].Name)
}

func TestManager_ReorderLayer(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition().AddLayer().AddLayer()

	up := c.ReorderLayer("layer-2", Up)
	assert.Equal(map[string]int{"layer-1": 0, "layer-2": 2, "layer-3": 1}, zIndexes(up))

	down := c.ReorderLayer("layer-2", Down)
	assert.Equal(map[string]int{"layer-1": 1, "layer-2": 0, "layer-3": 2}, zIndexes(down))

	assert.Equal(c, c.ReorderLayer("layer-3", Up), "moving the top layer up is a no-op")
	assert.Equal(c, c.ReorderLayer("layer-1", Down), "moving the bottom layer down is a no-op")
	assert.Equal(c, c.ReorderLayer("unknown", Up))
	assert.Equal(c, c.ReorderLayer("layer-2", Direction("sideways")))
}

func TestManager_ReorderUsesStackOrder(t *testing.T) {
	c := NewComposition().AddLayer().AddLayer()
	// Stack order differs from the collection order.
	c = c.UpdateLayer("layer-1", LayerPatch{ZIndex: Ptr(5)})
	c = c.UpdateLayer("layer-2", LayerPatch{ZIndex: Ptr(9)})
	c = c.UpdateLayer("layer-3", LayerPatch{ZIndex: Ptr(1)})

	n := c.ReorderLayer("layer-3", Up)
	assert.Equal(t, map[string]int{"layer-1": 1, "layer-2": 9, "layer-3": 5}, zIndexes(n))
}

func TestManager_ReorderTiedLayers(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition().AddLayer().AddLayer()
	c = c.UpdateLayer("layer-3", LayerPatch{ZIndex: Ptr(2)})
	c = c.UpdateLayer("layer-2", LayerPatch{ZIndex: Ptr(2)})

	n := c.ReorderLayer("layer-3", Down)
	assert.Equal(map[string]int{"layer-1": 0, "layer-2": 2, "layer-3": 1}, zIndexes(n))
	assert.Equal([]string{"layer-1", "layer-3", "layer-2"}, layerIDs(n.PaintOrder()))

	n = c.ReorderLayer("layer-2", Up)
	assert.Equal(map[string]int{"layer-1": 0, "layer-2": 2, "layer-3": 1}, zIndexes(n))
}

func TestManager_ReorderRoundTrip(t *testing.T) {
	c := NewComposition().AddLayer().AddLayer().AddLayer()

	for _, id := range []string{"layer-2", "layer-3"} {
		n := c.ReorderLayer(id, Up).ReorderLayer(id, Down)
		assert.Equal(t, zIndexes(c), zIndexes(n), id)
	}
}

func TestManager_UpdateLayer(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition()
	n := c.UpdateLayer("layer-1", LayerPatch{
		Scale:    Ptr(1.5),
		Rotation: Ptr(-45.0),
		Position: Ptr(TopLeft),
	})

	l := n.Layers[0]
	assert.Equal(1.5, l.Scale)
	assert.Equal(-45.0, l.Rotation)
	assert.Equal(TopLeft, l.Position)
	assert.Equal(DefaultGlyph, l.Icon, "fields missing from the patch are kept")
	assert.Equal(1.0, c.Layers[0].Scale, "the receiver must not change")

	assert.Equal(c, c.UpdateLayer("unknown", LayerPatch{Scale: Ptr(2.0)}))
}

func TestManager_SourceToggleKeepsImage(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition()
	c = c.UpdateLayer("layer-1", LayerPatch{Source: Ptr(SourceImage)})
	c, err := c.UploadImage("layer-1", redPNG(t, 10, 10))
	require.NoError(t, err)
	img := c.Layers[0].Image
	require.NotEmpty(t, img)

	c = c.UpdateLayer("layer-1", LayerPatch{Source: Ptr(SourceIcon)})
	assert.Equal(img, c.Layers[0].Image)

	c = c.UpdateLayer("layer-1", LayerPatch{Source: Ptr(SourceImage)})
	assert.Equal(SourceImage, c.Layers[0].Source)
	assert.Equal(img, c.Layers[0].Image)
}

func TestManager_Orders(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition().AddLayer().AddLayer()
	c = c.UpdateLayer("layer-1", LayerPatch{ZIndex: Ptr(2)})
	c = c.UpdateLayer("layer-2", LayerPatch{ZIndex: Ptr(0)})
	c = c.UpdateLayer("layer-3", LayerPatch{ZIndex: Ptr(1)})

	assert.Equal([]string{"layer-2", "layer-3", "layer-1"}, layerIDs(c.PaintOrder()))
	assert.Equal([]string{"layer-1", "layer-3", "layer-2"}, layerIDs(c.PanelOrder()))

	c = c.ToggleVisibility("layer-3")
	assert.Equal([]string{"layer-2", "layer-1"}, layerIDs(c.PaintOrder()))

	tied := NewComposition().AddLayer().AddLayer()
	tied = tied.UpdateLayer("layer-2", LayerPatch{ZIndex: Ptr(0)})
	tied = tied.UpdateLayer("layer-3", LayerPatch{ZIndex: Ptr(0)})
	assert.Equal([]string{"layer-1", "layer-2", "layer-3"}, layerIDs(tied.PaintOrder()), "ties keep the collection order")
}

func TestManager_CloneIsDeep(t *testing.T) {
	c := NewComposition().AddLayer()
	n := c.Clone()
	n.Layers[0].Name = "changed"

	assert.Equal(t, "Layer 1", c.Layers[0].Name)
}
