package deckicon

import (
	"image"
	"image/png"
	"io"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// encodePNG encodes the image as PNG into w.
func encodePNG(w io.Writer, img *image.NRGBA) error {
	return pngEncoder.Encode(w, img)
}
