package deckicon

import (
	"embed"
	"io/fs"
)

//go:embed icons/*.svg
var iconFiles embed.FS

// Glyphs is the built-in glyph catalog. It holds a subset of the Tabler
// icon set under the names its React components use, e.g. IconPlayerPlay.
// More icons, up to the whole set, can be added with Glyphs.LoadFS.
var Glyphs = mustLoadGlyphs(iconFiles)

func mustLoadGlyphs(fsys fs.FS) *Registry {
	fallback, err := loadGlyph(fsys, "icons/question-mark.svg")
	if err != nil {
		panic(err)
	}
	r := NewRegistry(fallback)
	if _, err := r.LoadFS(fsys, "icons/*.svg"); err != nil {
		panic(err)
	}
	return r
}
