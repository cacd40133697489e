// Package imageprocessing handles the image plumbing around the dithering
// engine: upload decoding, optional downscaling and PNG encoding.
package imageprocessing

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// allowedExtensions mirrors the upload formats the service accepts.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// AllowedFile reports whether the filename carries an accepted image
// extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ErrDecode marks input that is not a decodable image. Callers match it
// with errors.Is to distinguish bad uploads from internal failures.
var ErrDecode = errors.New("failed to decode image")

// Decode reads and decodes an uploaded image. The format name of the
// detected codec is returned alongside the image.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, format, nil
}
