// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// Porter and Duff presented in their paper 12 different composition operation,
// but the image/draw core package implements only the source-over-destination and source.
// This package is aimed to overcome the missing composite operations.
//
// The icon rasterizer paints every layer on its own bitmap and merges it
// with the backdrop using SrcOver, then cuts the rounded corners with DstIn.
package imop

import (
	"fmt"
	"image"
	"math"

	"github.com/esimov/deckicon/utils"
)

// Op is a Porter-Duff composition operator.
type Op string

const (
	Clear   Op = "clear"
	Copy    Op = "copy"
	Dst     Op = "dst"
	SrcOver Op = "src_over"
	DstOver Op = "dst_over"
	SrcIn   Op = "src_in"
	DstIn   Op = "dst_in"
	SrcOut  Op = "src_out"
	DstOut  Op = "dst_out"
	SrcAtop Op = "src_atop"
	DstAtop Op = "dst_atop"
	Xor     Op = "xor"
)

// Bitmap holds the result of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composition operation.
type Composite struct {
	current Op
	ops     []Op
}

// NewBitmap allocates a transparent bitmap.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// InitOp initializes a new Composite with SrcOver as the active operation.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []Op{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set changes the active composition operation.
func (op *Composite) Set(cop Op) error {
	if !utils.Contains(op.ops, cop) {
		return fmt.Errorf("unsupported composite operation: %v", cop)
	}
	op.current = cop
	return nil
}

// Get returns the active composition operation.
func (op *Composite) Get() Op {
	return op.current
}

// factors returns the Porter-Duff fractions of the source and the backdrop
// contributing to the result.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 0, 0
}

// Draw composes the src image over the dst (backdrop) image and writes the
// result into the bitmap. All three images are expected to share the same bounds;
// in case the bitmap is nil a new one is allocated and returned.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA) *Bitmap {
	if bitmap == nil {
		bitmap = NewBitmap(src.Bounds())
	}
	b := src.Bounds().Intersect(dst.Bounds()).Intersect(bitmap.Img.Bounds())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		bi := bitmap.Img.PixOffset(b.Min.X, y)

		for x := b.Min.X; x < b.Max.X; x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]
			o := bitmap.Img.Pix[bi : bi+4 : bi+4]

			as := float64(s[3]) / 255
			ab := float64(d[3]) / 255
			fa, fb := op.factors(as, ab)

			// applying the alpha composition formula on premultiplied values,
			// then converting back to non-premultiplied NRGBA.
			ao := as*fa + ab*fb
			if ao <= 0 {
				o[0], o[1], o[2], o[3] = 0, 0, 0, 0
			} else {
				for c := 0; c < 3; c++ {
					cs := float64(s[c]) / 255
					cb := float64(d[c]) / 255
					co := (as*cs*fa + ab*cb*fb) / ao
					o[c] = toUint8(co)
				}
				o[3] = toUint8(ao)
			}
			si += 4
			di += 4
			bi += 4
		}
	}
	return bitmap
}

func toUint8(v float64) uint8 {
	return uint8(math.Round(utils.Clamp(v, 0, 1) * 255))
}
