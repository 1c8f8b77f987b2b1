package deckicon

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/esimov/deckicon/utils"
	"go.uber.org/zap"
	"golang.org/x/image/math/f64"
)

// ElementSize is the width of a layer element before scaling. Glyphs are
// square, uploaded images keep their aspect ratio.
const ElementSize = 128

// ItemKind tells what an Item paints.
type ItemKind uint8

const (
	GlyphItem ItemKind = iota
	ImageItem
)

// Item is one layer resolved for painting.
type Item struct {
	LayerID   string
	Kind      ItemKind
	Glyph     Glyph
	Color     color.NRGBA
	Image     *image.NRGBA
	Placement Placement
	// Size is the unscaled element size.
	Size f64.Vec2
	// Origin is the top-left corner of the unscaled, unrotated element.
	Origin   f64.Vec2
	Scale    float64
	Rotation float64
	// Transform maps element coordinates to canvas coordinates.
	Transform f64.Aff3
}

// GlyphTransform maps glyph view box coordinates to canvas coordinates.
func (it Item) GlyphTransform() f64.Aff3 {
	return mul(it.Transform, scaling(it.Size[0]/GlyphViewBox))
}

// Frame is the resolved scene both renderers paint: a rounded square filled
// with the background color, the items from back to front and the label
// on top of everything.
type Frame struct {
	Size       int
	Radius     float64
	Background color.NRGBA
	Items      []Item
	Text       *TextBlock
}

// Composer resolves compositions into frames.
type Composer struct {
	glyphs *Registry
	canvas int
	images *imageCache
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithRegistry sets the glyph registry used to resolve icon names.
func WithRegistry(r *Registry) ComposerOption {
	return func(c *Composer) {
		if r != nil {
			c.glyphs = r
		}
	}
}

// WithCanvasSize sets the canvas side length. The default is CanvasSize.
func WithCanvasSize(n int) ComposerOption {
	return func(c *Composer) {
		c.canvas = n
	}
}

// NewComposer creates a composer using the built-in glyph catalog
// on a CanvasSize canvas.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		glyphs: Glyphs,
		canvas: CanvasSize,
		images: newImageCache(32),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Canvas returns the canvas side length.
func (cp *Composer) Canvas() int {
	return cp.canvas
}

// Registry returns the glyph registry of the composer.
func (cp *Composer) Registry() *Registry {
	return cp.glyphs
}

var defaultComposer = NewComposer()

// Compose resolves c with the default composer.
func Compose(c Composition) Frame {
	return defaultComposer.Compose(c)
}

// Compose resolves the composition into a frame. The result depends on
// nothing but the composition, so composing the same value twice yields
// equal frames.
func (cp *Composer) Compose(c Composition) Frame {
	canvas := float64(cp.canvas)

	f := Frame{
		Size:       cp.canvas,
		Radius:     CornerRadius,
		Background: colorOr(c.Background, color.NRGBA{A: 0xff}),
	}
	for _, l := range c.PaintOrder() {
		if it, ok := cp.item(l, canvas); ok {
			f.Items = append(f.Items, it)
		}
	}
	f.Text = layoutText(
		c.Text,
		colorOr(c.TextColor, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		c.TextPosition,
		utils.Clamp(c.TextScale, MinTextScale, MaxTextScale),
		canvas,
	)
	return f
}

func (cp *Composer) item(l Layer, canvas float64) (Item, bool) {
	it := Item{
		LayerID:  l.ID,
		Scale:    utils.Clamp(l.Scale, MinScale, MaxScale),
		Rotation: utils.Clamp(l.Rotation, MinRotation, MaxRotation),
		Placement: ResolveLayer(l.Position,
			utils.Clamp(l.OffsetX, -MaxOffset, MaxOffset),
			utils.Clamp(l.OffsetY, -MaxOffset, MaxOffset),
		),
	}

	switch l.Source {
	case SourceImage:
		if !l.HasImage() {
			return it, false
		}
		img, err := cp.images.get(l.Image)
		if err != nil {
			Logger().Debug("skipping layer image", zap.String("layer", l.ID), zap.Error(err))
			return it, false
		}
		it.Kind = ImageItem
		it.Image = img
		it.Size = f64.Vec2{float64(img.Bounds().Dx()), float64(img.Bounds().Dy())}
	default:
		it.Kind = GlyphItem
		it.Glyph, _ = cp.glyphs.Lookup(l.Icon)
		it.Color = colorOr(l.Color, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		it.Size = f64.Vec2{ElementSize, ElementSize}
	}

	x, y := it.Placement.Origin(canvas, it.Size[0], it.Size[1])
	it.Origin = f64.Vec2{x, y}
	it.Transform = elementTransform(it.Origin, it.Size, it.Scale, it.Rotation)
	return it, true
}

// elementTransform places an element at origin, then scales and rotates
// it about its own center.
func elementTransform(origin, size f64.Vec2, scale, rotation float64) f64.Aff3 {
	hw, hh := size[0]/2, size[1]/2
	m := translate(origin[0]+hw, origin[1]+hh)
	m = mul(m, rotate(rotation))
	m = mul(m, scaling(scale))
	return mul(m, translate(-hw, -hh))
}

// ParseColor parses a #rrggbb (or #rgb) color.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := utils.HexToRGBA(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

func colorOr(s string, def color.NRGBA) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}

// imageCache keeps uploaded images decoded and resized to the element
// width, keyed by their data URL.
type imageCache struct {
	mu    sync.Mutex
	limit int
	items map[string]*image.NRGBA
}

func newImageCache(limit int) *imageCache {
	return &imageCache{
		limit: limit,
		items: make(map[string]*image.NRGBA),
	}
}

func (c *imageCache) get(url string) (*image.NRGBA, error) {
	c.mu.Lock()
	img, ok := c.items[url]
	c.mu.Unlock()
	if ok {
		return img, nil
	}

	src, err := DecodeDataURL(url)
	if err != nil {
		return nil, err
	}
	img = imaging.Resize(src, ElementSize, 0, imaging.Lanczos)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) >= c.limit {
		for k := range c.items {
			delete(c.items, k)
			break
		}
	}
	c.items[url] = img
	return img, nil
}

// Affine helpers. f64.Aff3 holds the first two rows of a 3×3 matrix:
// x' = m[0]*x + m[1]*y + m[2], y' = m[3]*x + m[4]*y + m[5].

func translate(x, y float64) f64.Aff3 {
	return f64.Aff3{1, 0, x, 0, 1, y}
}

func scaling(s float64) f64.Aff3 {
	return f64.Aff3{s, 0, 0, 0, s, 0}
}

// rotate returns a clockwise rotation on the y-down canvas.
func rotate(deg float64) f64.Aff3 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

// mul returns a·b, the transform applying b first.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func apply(m f64.Aff3, p f64.Vec2) f64.Vec2 {
	return f64.Vec2{
		m[0]*p[0] + m[1]*p[1] + m[2],
		m[3]*p[0] + m[4]*p[1] + m[5],
	}
}
