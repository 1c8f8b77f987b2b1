package deckicon

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func redPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{red}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUpload_LoadUpload(t *testing.T) {
	assert := assert.New(t)

	url, err := LoadUpload(redPNG(t, 10, 10))
	require.NoError(t, err)
	assert.True(strings.HasPrefix(url, "data:image/png;base64,"))

	img, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(image.Rect(0, 0, 10, 10), img.Bounds())

	r, g, b, a := img.At(5, 5).RGBA()
	assert.Equal([4]uint32{0xffff, 0, 0, 0xffff}, [4]uint32{r, g, b, a})
}

func TestUpload_JPEG(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	url, err := LoadUpload(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
}

func TestUpload_Rejected(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"text", []byte("definitely not an image")},
		{"gif", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")},
		{"truncated png", redPNG(t, 10, 10)[:40]},
		{"empty", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadUpload(tc.data)
			assert.ErrorIs(t, err, ErrUnsupportedImage)
		})
	}
}

func TestUpload_RejectedLeavesStateUnchanged(t *testing.T) {
	c := NewComposition()
	n, err := c.UploadImage("layer-1", []byte("plain text"))

	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Equal(t, c, n)
}

func TestUpload_DecodeDataURL(t *testing.T) {
	for _, s := range []string{
		"",
		"image/png;base64,AAAA",
		"data:image/png,AAAA",
		"data:image/gif;base64,R0lGODlh",
		"data:image/png;base64,!!!",
	} {
		_, err := DecodeDataURL(s)
		assert.ErrorIs(t, err, ErrUnsupportedImage, s)
	}
}
