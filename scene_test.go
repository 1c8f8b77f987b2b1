package deckicon

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

func assertVec(t *testing.T, want, got f64.Vec2) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], 1e-9)
	assert.InDelta(t, want[1], got[1], 1e-9)
}

func TestScene_PaintOrder(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition().AddLayer().AddLayer().SetText("TOP")
	c = c.UpdateLayer("layer-1", LayerPatch{ZIndex: Ptr(2)})
	c = c.UpdateLayer("layer-2", LayerPatch{ZIndex: Ptr(0)})
	c = c.UpdateLayer("layer-3", LayerPatch{ZIndex: Ptr(1)})

	f := Compose(c)
	require.Len(t, f.Items, 3)
	assert.Equal("layer-2", f.Items[0].LayerID)
	assert.Equal("layer-3", f.Items[1].LayerID)
	assert.Equal("layer-1", f.Items[2].LayerID)
	assert.NotNil(f.Text, "the label is painted after every item")

	c = c.UpdateLayer("layer-3", LayerPatch{ZIndex: Ptr(1000)})
	f = Compose(c)
	assert.Equal("layer-3", f.Items[2].LayerID)
	assert.NotNil(f.Text)
}

func TestScene_HiddenLayers(t *testing.T) {
	c := NewComposition().AddLayer().ToggleVisibility("layer-1")
	f := Compose(c)

	require.Len(t, f.Items, 1)
	assert.Equal(t, "layer-2", f.Items[0].LayerID)
}

func TestScene_Idempotent(t *testing.T) {
	c := NewComposition().AddLayer().SetText("Hello deck").SetTextScale(1.4)
	c = c.UpdateLayer("layer-2", LayerPatch{
		Icon:     Ptr("IconStar"),
		Rotation: Ptr(30.0),
		Position: Ptr(TopRight),
		OffsetX:  Ptr(-12.0),
	})
	c, err := c.UploadImage("layer-1", redPNG(t, 20, 10))
	require.NoError(t, err)
	c = c.UpdateLayer("layer-1", LayerPatch{Source: Ptr(SourceImage)})

	assert.Equal(t, Compose(c), Compose(c))
}

func TestScene_Frame(t *testing.T) {
	assert := assert.New(t)

	f := Compose(NewComposition())
	assert.Equal(CanvasSize, f.Size)
	assert.Equal(float64(CornerRadius), f.Radius)
	assert.Equal(color.NRGBA{A: 0xff}, f.Background)
	assert.Nil(f.Text)

	it := f.Items[0]
	assert.Equal(GlyphItem, it.Kind)
	assert.Equal(DefaultGlyph, it.Glyph.Name)
	assert.Equal(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, it.Color)
	assert.Equal(f64.Vec2{ElementSize, ElementSize}, it.Size)
	assert.Equal(f64.Vec2{64, 64}, it.Origin)
}

func TestScene_FallbackGlyph(t *testing.T) {
	c := NewComposition().UpdateLayer("layer-1", LayerPatch{Icon: Ptr("IconRemovedLongAgo")})
	f := Compose(c)

	require.Len(t, f.Items, 1)
	assert.Equal(t, FallbackGlyph, f.Items[0].Glyph.Name)
}

func TestScene_ImageLayer(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition().UpdateLayer("layer-1", LayerPatch{Source: Ptr(SourceImage)})
	assert.Empty(Compose(c).Items, "an image layer without image draws nothing")

	c = c.UpdateLayer("layer-1", LayerPatch{Image: Ptr("data:image/png;base64,broken")})
	assert.Empty(Compose(c).Items)

	c, err := c.UploadImage("layer-1", redPNG(t, 20, 10))
	require.NoError(t, err)
	f := Compose(c)
	require.Len(t, f.Items, 1)

	it := f.Items[0]
	assert.Equal(ImageItem, it.Kind)
	assert.Equal(f64.Vec2{128, 64}, it.Size, "images keep their aspect ratio")
	assert.Equal(f64.Vec2{64, 96}, it.Origin)
	assert.Equal(red, it.Image.NRGBAAt(64, 32))
}

func TestScene_Clamping(t *testing.T) {
	assert := assert.New(t)

	c := NewComposition().UpdateLayer("layer-1", LayerPatch{
		Scale:    Ptr(12.0),
		Rotation: Ptr(720.0),
		OffsetX:  Ptr(500.0),
		OffsetY:  Ptr(math.NaN()),
		Color:    Ptr("not a color"),
	})
	c = c.SetBackground("#zzzzzz").SetTextColor("").SetTextScale(0).SetText("x")

	f := Compose(c)
	it := f.Items[0]
	assert.Equal(MaxScale, it.Scale)
	assert.Equal(MaxRotation, it.Rotation)
	assert.Equal(AxisPlacement{Mode: Center, Translate: MaxOffset}, it.Placement.Horizontal)
	assert.Equal(AxisPlacement{Mode: Center, Translate: -MaxOffset}, it.Placement.Vertical)
	assert.Equal(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, it.Color)
	assert.Equal(color.NRGBA{A: 0xff}, f.Background)
	require.NotNil(t, f.Text)
	assert.Equal(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, f.Text.Color)
}

func TestScene_ElementTransform(t *testing.T) {
	origin, size := f64.Vec2{30, 15}, f64.Vec2{128, 128}
	center := f64.Vec2{94, 79}

	for _, rot := range []float64{0, 45, 90, -270} {
		for _, s := range []float64{0.1, 1, 2.5} {
			m := elementTransform(origin, size, s, rot)
			assertVec(t, center, apply(m, f64.Vec2{64, 64}))
		}
	}

	// Clockwise on the y-down canvas: the top-right corner moves to the bottom-right.
	m := elementTransform(origin, size, 1, 90)
	assertVec(t, f64.Vec2{158, 143}, apply(m, f64.Vec2{128, 0}))

	m = elementTransform(origin, size, 0.5, 0)
	assertVec(t, f64.Vec2{62, 47}, apply(m, f64.Vec2{0, 0}))
}

func TestScene_Text(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(Compose(NewComposition().SetText("   \n\t")).Text)

	f := Compose(NewComposition().SetText("Hi").SetTextPosition(TopLeft))
	require.NotNil(t, f.Text)
	tb := f.Text
	assert.Equal([]string{"Hi"}, tb.Lines)
	assert.Equal(float64(CanvasSize), tb.Size[0])
	assert.Equal(float64(TextMargin), tb.Origin[1])
	assert.Equal(tb.Image.Bounds().Dx(), CanvasSize)
	assert.Equal(float64(tb.Image.Bounds().Dy()), tb.Size[1])

	f = Compose(NewComposition().SetText("Hi").SetTextPosition(BottomRight))
	assert.Equal(float64(CanvasSize-TextMargin)-f.Text.Size[1], f.Text.Origin[1])
}

func TestScene_TextScale(t *testing.T) {
	c := NewComposition().SetText("Scale").SetTextPosition(MiddleCenter).SetTextScale(2)
	tb := Compose(c).Text
	require.NotNil(t, tb)

	h := tb.Size[1]
	center := f64.Vec2{CanvasSize / 2, tb.Origin[1] + h/2}
	assertVec(t, center, apply(tb.Transform, f64.Vec2{CanvasSize / 2, h / 2}))
	assertVec(t, f64.Vec2{-CanvasSize / 2, center[1] - h}, apply(tb.Transform, f64.Vec2{0, 0}))
}

func TestScene_TextWrap(t *testing.T) {
	assert := assert.New(t)

	face, err := newLabelFace()
	require.NoError(t, err)
	defer face.Close()

	width := float64(CanvasSize - 2*TextMargin)
	limit := fixed.Int26_6(width * 64)

	lines := wrapText(face, "Stream deck icon with a rather long label", width)
	assert.Greater(len(lines), 1)
	assert.Equal("Stream deck icon with a rather long label", strings.Join(lines, " "))
	for _, l := range lines {
		assert.LessOrEqual(font.MeasureString(face, l), limit, l)
	}

	long := strings.Repeat("W", 40)
	lines = wrapText(face, long, width)
	assert.Greater(len(lines), 1, "overlong words are broken")
	assert.Equal(long, strings.Join(lines, ""))
	for _, l := range lines {
		assert.LessOrEqual(font.MeasureString(face, l), limit, l)
	}

	assert.Equal([]string{"A B"}, wrapText(face, "A\n\nB", width), "white space collapses")
	assert.Equal([]string{"A B"}, wrapText(face, "  A \t B  ", width))
}
