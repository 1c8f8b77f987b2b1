package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/esimov/deckicon"
	"github.com/pelletier/go-toml/v2"
)

// recipe describes a composition in a TOML file:
//
//	text = "MUTE"
//	text_position = "bottom-center"
//	background = "#1e1e2e"
//
//	[[layer]]
//	icon = "IconMicrophone"
//	color = "#f38ba8"
//	scale = 0.8
//
//	[[layer]]
//	source = "image"
//	image = "logo.png"
//	position = "top-right"
type recipe struct {
	Text         string        `toml:"text"`
	TextColor    string        `toml:"text_color"`
	TextPosition string        `toml:"text_position"`
	TextScale    float64       `toml:"text_scale"`
	Background   string        `toml:"background"`
	Layers       []recipeLayer `toml:"layer"`
}

type recipeLayer struct {
	Name     string  `toml:"name"`
	Source   string  `toml:"source"`
	Icon     string  `toml:"icon"`
	Image    string  `toml:"image"`
	Color    string  `toml:"color"`
	Scale    float64 `toml:"scale"`
	Rotation float64 `toml:"rotation"`
	Position string  `toml:"position"`
	OffsetX  float64 `toml:"offset_x"`
	OffsetY  float64 `toml:"offset_y"`
	Hidden   bool    `toml:"hidden"`
	ZIndex   *int    `toml:"z_index"`
}

// loadRecipe decodes the recipe file. Unknown keys are reported as errors.
func loadRecipe(path string) (*recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read the recipe: %w", err)
	}
	r := new(recipe)
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(r); err != nil {
		return nil, fmt.Errorf("invalid recipe %s: %w", filepath.Base(path), err)
	}
	return r, nil
}

// apply builds the composition described by the recipe on top of c.
// Image paths are resolved relative to dir.
func (r *recipe) apply(c deckicon.Composition, dir string) (deckicon.Composition, error) {
	if r.Text != "" {
		c = c.SetText(r.Text)
	}
	if r.TextColor != "" {
		c = c.SetTextColor(r.TextColor)
	}
	if r.TextPosition != "" {
		c = c.SetTextPosition(deckicon.Anchor(r.TextPosition))
	}
	if r.TextScale != 0 {
		c = c.SetTextScale(r.TextScale)
	}
	if r.Background != "" {
		c = c.SetBackground(r.Background)
	}

	for i, rl := range r.Layers {
		if i > 0 {
			c = c.AddLayer()
		}
		id := c.ActiveID

		var err error
		if c, err = rl.apply(c, id, dir); err != nil {
			return c, fmt.Errorf("layer %d: %w", i+1, err)
		}
	}
	if len(r.Layers) > 0 {
		c = c.SelectLayer(c.Layers[0].ID)
	}
	return c, nil
}

func (rl recipeLayer) apply(c deckicon.Composition, id, dir string) (deckicon.Composition, error) {
	var p deckicon.LayerPatch
	if rl.Name != "" {
		p.Name = &rl.Name
	}
	if rl.Source != "" {
		p.Source = deckicon.Ptr(deckicon.Source(rl.Source))
	}
	if rl.Icon != "" {
		p.Icon = &rl.Icon
	}
	if rl.Color != "" {
		p.Color = &rl.Color
	}
	if rl.Scale != 0 {
		p.Scale = &rl.Scale
	}
	if rl.Rotation != 0 {
		p.Rotation = &rl.Rotation
	}
	if rl.Position != "" {
		p.Position = deckicon.Ptr(deckicon.Anchor(rl.Position))
	}
	if rl.OffsetX != 0 {
		p.OffsetX = &rl.OffsetX
	}
	if rl.OffsetY != 0 {
		p.OffsetY = &rl.OffsetY
	}
	if rl.Hidden {
		p.Visible = deckicon.Ptr(false)
	}
	if rl.ZIndex != nil {
		p.ZIndex = rl.ZIndex
	}
	c = c.UpdateLayer(id, p)

	if rl.Image == "" {
		return c, nil
	}
	path := rl.Image
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("unable to read the layer image: %w", err)
	}
	return c.UploadImage(id, data)
}
