package deckicon

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/deckicon/utils"
)

// AcceptedImageTypes lists the MIME types accepted for uploaded images.
var AcceptedImageTypes = []string{"image/png", "image/jpeg"}

// LoadUpload validates raw image bytes and returns them encoded as a data URL,
// ready to be stored on a layer. Anything other than a decodable PNG or JPEG
// image is rejected with ErrUnsupportedImage.
func LoadUpload(data []byte) (string, error) {
	mime := utils.DetectContentType(data)
	if !utils.Contains(AcceptedImageTypes, mime) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mime)
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// UploadImage attaches an uploaded image to a layer. The active source of the
// layer is left as it is. On error the composition is returned unchanged.
func (c Composition) UploadImage(id string, data []byte) (Composition, error) {
	url, err := LoadUpload(data)
	if err != nil {
		return c, err
	}
	return c.UpdateLayer(id, LayerPatch{Image: &url}), nil
}

// DecodeDataURL decodes a base64 data URL holding a PNG or JPEG image.
// The EXIF orientation of JPEG images is applied.
func DecodeDataURL(s string) (image.Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data url", ErrUnsupportedImage)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: data url is not base64 encoded", ErrUnsupportedImage)
	}
	mime := strings.TrimSuffix(header, ";base64")
	if !utils.Contains(AcceptedImageTypes, mime) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mime)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return img, nil
}
