package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUtils_HexToRGBA(t *testing.T) {
	assert := assert.New(t)

	testCases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ffffff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#000000", color.NRGBA{A: 0xff}},
		{"1e90ff", color.NRGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0xff}},
		{"#f0a", color.NRGBA{R: 0xff, G: 0x00, B: 0xaa, A: 0xff}},
	}
	for _, tc := range testCases {
		got, err := HexToRGBA(tc.in)
		assert.NoError(err, tc.in)
		assert.Equal(tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "#12", "#gggggg", "#12345678"} {
		_, err := HexToRGBA(bad)
		assert.ErrorIs(err, ErrInvalidHex, bad)
	}
}

func TestUtils_Clamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0.1, Clamp(0.0, 0.1, 3))
	assert.Equal(3.0, Clamp(7.5, 0.1, 3))
	assert.Equal(1.5, Clamp(1.5, 0.1, 3))
	assert.Equal(-120.0, Clamp(math.NaN(), -120, 120))
	assert.Equal(2, Min(2, 5))
	assert.Equal(5, Max(2, 5))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	assert.NoError(t, err)

	assert.Equal(t, "image/png", DetectContentType(buf.Bytes()))
	assert.True(t, strings.HasPrefix(DetectContentType([]byte("plain text")), "text/plain"))
}

func TestUtils_FormatTime(t *testing.T) {
	assert.Equal(t, "250ms", FormatTime(250*time.Millisecond))
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 5.00s", FormatTime(125*time.Second))
}

func TestUtils_Contains(t *testing.T) {
	assert.True(t, Contains([]string{"image/png", "image/jpeg"}, "image/jpeg"))
	assert.False(t, Contains([]string{"image/png"}, "image/gif"))
}
