package deckicon

import (
	"image"

	"gioui.org/f32"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"golang.org/x/image/math/f64"
)

// draw paints the current frame centered in the window.
func (p *Preview) draw(e system.FrameEvent) {
	gtx := layout.NewContext(&p.ops, e)
	paint.Fill(gtx.Ops, p.cfg.window)

	scale := e.Metric.PxPerDp
	size := float32(p.frame.Size) * scale
	off := f32.Pt(
		(float32(e.Size.X)-size)/2,
		(float32(e.Size.Y)-size)/2,
	)
	tr := f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(scale, scale)).Offset(off)
	defer op.Affine(tr).Push(gtx.Ops).Pop()

	p.drawFrame(gtx.Ops)
	e.Frame(gtx.Ops)
}

// drawFrame records the frame in canvas coordinates. Everything is clipped
// to the rounded background.
func (p *Preview) drawFrame(ops *op.Ops) {
	f := p.frame
	bounds := image.Rect(0, 0, f.Size, f.Size)
	defer clip.UniformRRect(bounds, int(f.Radius)).Push(ops).Pop()

	paint.ColorOp{Color: f.Background}.Add(ops)
	paint.PaintOp{}.Add(ops)

	for _, it := range f.Items {
		switch it.Kind {
		case GlyphItem:
			p.drawGlyph(ops, it)
		case ImageItem:
			p.drawImage(ops, p.imageOp(it.Image), it.Transform)
		}
	}
	if f.Text != nil {
		p.drawImage(ops, p.imageOp(f.Text.Image), f.Text.Transform)
	}
}

// drawGlyph fills the glyph outline with the item color.
func (p *Preview) drawGlyph(ops *op.Ops, it Item) {
	var path clip.Path
	path.Begin(ops)
	for _, s := range it.Glyph.Transform(it.GlyphTransform()) {
		switch s.Op {
		case MoveTo:
			path.MoveTo(point(s.Pts[0]))
		case LineTo:
			path.LineTo(point(s.Pts[0]))
		case QuadTo:
			path.QuadTo(point(s.Pts[0]), point(s.Pts[1]))
		case CubeTo:
			path.CubeTo(point(s.Pts[0]), point(s.Pts[1]), point(s.Pts[2]))
		case ClosePath:
			path.Close()
		}
	}
	paint.FillShape(ops, it.Color, clip.Outline{Path: path.End()}.Op())
}

// drawImage paints src under the element transform m.
func (p *Preview) drawImage(ops *op.Ops, src paint.ImageOp, m f64.Aff3) {
	defer op.Affine(affine(m)).Push(ops).Pop()
	src.Add(ops)
	defer clip.Rect{Max: src.Size()}.Push(ops).Pop()
	paint.PaintOp{}.Add(ops)
}

func (p *Preview) imageOp(img *image.NRGBA) paint.ImageOp {
	if src, ok := p.images[img]; ok {
		return src
	}
	src := paint.NewImageOp(img)
	p.images[img] = src
	return src
}

// point converts a canvas coordinate to a Gio point.
func point(v f64.Vec2) f32.Point {
	return f32.Pt(float32(v[0]), float32(v[1]))
}

// affine converts a canvas transform to its Gio counterpart.
func affine(m f64.Aff3) f32.Affine2D {
	return f32.NewAffine2D(
		float32(m[0]), float32(m[1]), float32(m[2]),
		float32(m[3]), float32(m[4]), float32(m[5]),
	)
}
