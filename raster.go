package deckicon

import (
	"image"

	"github.com/esimov/deckicon/imop"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Rasterize paints the frame into a new image. Every item is painted on its
// own transparent bitmap and merged with the canvas, then the corners are
// cut with the rounded mask.
func Rasterize(f Frame) *image.NRGBA {
	bounds := image.Rect(0, 0, f.Size, f.Size)
	canvas := image.NewNRGBA(bounds)
	xdraw.Draw(canvas, bounds, image.NewUniform(f.Background), image.Point{}, xdraw.Src)

	op := imop.InitOp()
	out := &imop.Bitmap{Img: canvas}
	layer := image.NewNRGBA(bounds)

	for _, it := range f.Items {
		clear(layer.Pix)
		switch it.Kind {
		case GlyphItem:
			fillGlyph(layer, it)
		case ImageItem:
			xdraw.CatmullRom.Transform(layer, it.Transform, it.Image, it.Image.Bounds(), xdraw.Over, nil)
		}
		op.Draw(out, layer, canvas)
	}
	if f.Text != nil {
		clear(layer.Pix)
		xdraw.BiLinear.Transform(layer, f.Text.Transform, f.Text.Image, f.Text.Image.Bounds(), xdraw.Over, nil)
		op.Draw(out, layer, canvas)
	}

	mask := roundedMask(bounds, f.Radius)
	if err := op.Set(imop.DstIn); err == nil {
		op.Draw(out, mask, canvas)
	}
	return canvas
}

func fillGlyph(dst *image.NRGBA, it Item) {
	b := dst.Bounds()

	var r vector.Rasterizer
	r.Reset(b.Dx(), b.Dy())
	for _, s := range it.Glyph.Transform(it.GlyphTransform()) {
		p := s.Pts
		switch s.Op {
		case MoveTo:
			r.MoveTo(float32(p[0][0]), float32(p[0][1]))
		case LineTo:
			r.LineTo(float32(p[0][0]), float32(p[0][1]))
		case QuadTo:
			r.QuadTo(float32(p[0][0]), float32(p[0][1]), float32(p[1][0]), float32(p[1][1]))
		case CubeTo:
			r.CubeTo(float32(p[0][0]), float32(p[0][1]), float32(p[1][0]), float32(p[1][1]), float32(p[2][0]), float32(p[2][1]))
		case ClosePath:
			r.ClosePath()
		}
	}
	r.Draw(dst, b, image.NewUniform(it.Color), image.Point{})
}

// roundedMask returns an opaque rounded rectangle covering bounds
// over a transparent background.
func roundedMask(bounds image.Rectangle, radius float64) *image.NRGBA {
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	rad := float32(radius)
	if m := min(w, h) / 2; rad > m {
		rad = m
	}
	// Control point distance of a cubic quarter circle.
	k := rad * 0.5522847498

	var r vector.Rasterizer
	r.Reset(bounds.Dx(), bounds.Dy())
	r.MoveTo(rad, 0)
	r.LineTo(w-rad, 0)
	r.CubeTo(w-rad+k, 0, w, rad-k, w, rad)
	r.LineTo(w, h-rad)
	r.CubeTo(w, h-rad+k, w-rad+k, h, w-rad, h)
	r.LineTo(rad, h)
	r.CubeTo(rad-k, h, 0, h-rad+k, 0, h-rad)
	r.LineTo(0, rad)
	r.CubeTo(0, rad-k, rad-k, 0, rad, 0)
	r.ClosePath()

	mask := image.NewNRGBA(bounds)
	r.Draw(mask, bounds, image.Opaque, image.Point{})
	return mask
}
