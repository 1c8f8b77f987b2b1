package utils

import (
	"net/http"

	"github.com/h2non/filetype"
)

// DetectContentType detects the MIME type of a file by reading its magic numbers.
// In case filetype does not recognize the content, it falls back to the
// net/http sniffing algorithm, which always returns a valid content-type
// ("application/octet-stream" if no others seemed to match).
func DetectContentType(buf []byte) string {
	// Only the first 512 bytes are used to sniff the content type.
	if len(buf) > 512 {
		buf = buf[:512]
	}
	if kind, err := filetype.Match(buf); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return http.DetectContentType(buf)
}

// Contains returns true if a value is available in the collection.
func Contains[T comparable](slice []T, value T) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}
