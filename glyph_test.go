package deckicon

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/f64"
)

func TestGlyph_Lookup(t *testing.T) {
	assert := assert.New(t)

	g, ok := Glyphs.Lookup("IconHome")
	assert.True(ok)
	assert.Equal("IconHome", g.Name)

	g, ok = Glyphs.Lookup("IconDoesNotExist")
	assert.False(ok)
	assert.Equal(FallbackGlyph, g.Name)

	_, ok = Glyphs.Lookup(FallbackGlyph)
	assert.True(ok)
}

func TestGlyph_TablerNames(t *testing.T) {
	for _, name := range []string{
		"IconPlayerPlay", "IconPlayerPause", "IconPlayerStop", "IconPlayerRecord",
		"IconPlayerTrackNext", "IconPlayerPlayFilled", "IconSettings", "IconVolume",
		"IconMicrophoneOff", "IconX", "IconDeviceDesktop", "IconStarFilled",
	} {
		_, ok := Glyphs.Lookup(name)
		assert.True(t, ok, name)
	}
}

func TestGlyph_Catalog(t *testing.T) {
	names := Glyphs.Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, DefaultGlyph)
	assert.Contains(t, names, FallbackGlyph)
	assert.GreaterOrEqual(t, len(names), 50)

	// Stroked outlines may reach half the stroke width past the view box.
	const margin = 1.5
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			g, _ := Glyphs.Lookup(name)
			if !assert.NotEmpty(t, g.Path) {
				return
			}
			assert.Equal(t, MoveTo, g.Path[0].Op)
			assert.Equal(t, ClosePath, g.Path[len(g.Path)-1].Op)

			for _, s := range g.Path {
				for k := 0; k < s.points(); k++ {
					p := s.Pts[k]
					assert.True(t, p[0] >= -margin && p[0] <= GlyphViewBox+margin &&
						p[1] >= -margin && p[1] <= GlyphViewBox+margin,
						"point %v outside of the view box", p)
				}
			}
		})
	}
}

func TestGlyph_Register(t *testing.T) {
	assert := assert.New(t)

	fallback := new(pathBuilder).circle(12, 12, 4, false).glyph(FallbackGlyph)
	r := NewRegistry(fallback)
	assert.Equal([]string{FallbackGlyph}, r.Names())

	r.Register(Glyph{})
	assert.Len(r.Names(), 1, "glyphs without a name are ignored")

	custom := new(pathBuilder).rect(0, 0, 24, 24, false).glyph("Full")
	r.Register(custom)
	g, ok := r.Lookup("Full")
	assert.True(ok)
	assert.Equal(custom, g)
}

func TestGlyph_Transform(t *testing.T) {
	g := new(pathBuilder).poly(0, 0, 24, 0, 24, 24).glyph("tri")
	segs := g.Transform(f64.Aff3{2, 0, 10, 0, 2, 20})

	assert.Equal(t, f64.Vec2{10, 20}, segs[0].Pts[0])
	assert.Equal(t, f64.Vec2{58, 20}, segs[1].Pts[0])
	assert.Equal(t, f64.Vec2{58, 68}, segs[2].Pts[0])
	assert.Equal(t, ClosePath, segs[3].Op)
	assert.Equal(t, f64.Vec2{24, 0}, g.Path[1].Pts[0], "the glyph itself is left untouched")
}

func TestGlyph_ArcTo(t *testing.T) {
	assert := assert.New(t)

	// A half circle of radius 5 from (2,12) to (12,12) through (7,7).
	b := new(pathBuilder).moveTo(2, 12)
	b.arcTo(5, 5, 0, false, true, 12, 12)

	segs := b.segs[1:]
	assert.Len(segs, 2, "one cubic per quarter turn")
	for _, s := range segs {
		assert.Equal(CubeTo, s.Op)
	}
	assert.InDelta(7, segs[0].Pts[2][0], 1e-9)
	assert.InDelta(7, segs[0].Pts[2][1], 1e-9)
	assert.Equal(f64.Vec2{12, 12}, segs[1].Pts[2])

	// Radii too small for the endpoints are scaled up.
	b = new(pathBuilder).moveTo(0, 0)
	b.arcTo(1, 1, 0, false, true, 10, 0)
	assert.Equal(f64.Vec2{10, 0}, b.cur)
	assert.InDelta(-5, b.segs[1].Pts[2][1], 1e-9)
	assert.InDelta(5, math.Abs(b.segs[1].Pts[2][0]), 1e-9)

	// Zero radii degrade to a line.
	b = new(pathBuilder).moveTo(0, 0)
	b.arcTo(0, 3, 0, false, true, 4, 4)
	assert.Equal(LineTo, b.segs[1].Op)
}
