package deckicon

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// FontSize is the size in pixels of the label font.
const FontSize = 32

var (
	labelFont     *opentype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

// newLabelFace returns a new bold face for the label. Faces keep glyph
// caches and must not be shared between goroutines.
func newLabelFace() (font.Face, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(gobold.TTF)
	})
	if labelFontErr != nil {
		return nil, labelFontErr
	}
	return opentype.NewFace(labelFont, &opentype.FaceOptions{
		Size:    FontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// TextBlock is the laid out label. The block spans the whole canvas width,
// the lines are aligned inside the TextMargin padding.
type TextBlock struct {
	Lines     []string
	Color     color.NRGBA
	Placement Placement
	// Size is the unscaled block size.
	Size f64.Vec2
	// Origin is the unscaled top-left corner of the block.
	Origin f64.Vec2
	// Transform maps block coordinates to canvas coordinates.
	Transform f64.Aff3
	// Image holds the rendered lines over a transparent background.
	Image *image.NRGBA
}

// layoutText wraps and renders the label. It returns nil for blank text.
func layoutText(text string, col color.NRGBA, pos Anchor, scale, canvas float64) *TextBlock {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	face, err := newLabelFace()
	if err != nil {
		Logger().Error("cannot load label font", zap.Error(err))
		return nil
	}
	defer face.Close()

	width := canvas - 2*TextMargin
	lines := wrapText(face, text, width)

	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	height := float64(lineHeight * len(lines))

	place := ResolveText(pos)
	_, y := place.Origin(canvas, canvas, height)

	tb := &TextBlock{
		Lines:     lines,
		Color:     col,
		Placement: place,
		Size:      f64.Vec2{canvas, height},
		Origin:    f64.Vec2{0, y},
	}
	tb.Transform = mul(
		translate(canvas/2, y+height/2),
		mul(scaling(scale), translate(-canvas/2, -height/2)),
	)

	img := image.NewNRGBA(image.Rect(0, 0, int(canvas), lineHeight*len(lines)))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	for i, line := range lines {
		w := font.MeasureString(face, line)
		var x fixed.Int26_6
		switch place.Horizontal.Mode {
		case Start:
			x = fixed.I(TextMargin)
		case End:
			x = fixed.I(int(canvas)-TextMargin) - w
		default:
			x = (fixed.I(int(canvas)) - w) / 2
		}
		d.Dot = fixed.Point26_6{X: x, Y: fixed.I(i*lineHeight) + m.Ascent}
		d.DrawString(line)
	}
	tb.Image = img
	return tb
}

// wrapText breaks text into lines no wider than width. Words wider than
// a line are broken between runes. Runs of white space, newlines included,
// collapse into a single space.
func wrapText(face font.Face, text string, width float64) []string {
	limit := fixed.Int26_6(width * 64)
	var (
		lines []string
		cur   string
	)
	for _, word := range strings.Fields(text) {
		cand := word
		if cur != "" {
			cand = cur + " " + word
		}
		if font.MeasureString(face, cand) <= limit {
			cur = cand
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		for font.MeasureString(face, word) > limit {
			head, tail := breakWord(face, word, limit)
			lines = append(lines, head)
			word = tail
		}
		cur = word
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// breakWord splits off the longest prefix of word that fits in limit.
// At least one rune is always taken.
func breakWord(face font.Face, word string, limit fixed.Int26_6) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && font.MeasureString(face, string(runes[:n+1])) <= limit {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
