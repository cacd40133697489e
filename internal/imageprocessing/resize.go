package imageprocessing

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ScaleToMaxWidth downscales an image so its width does not exceed
// maxWidth, preserving aspect ratio. Images already within the limit are
// returned unchanged; upscaling never happens.
func ScaleToMaxWidth(img image.Image, maxWidth int) image.Image {
	if img == nil || maxWidth <= 0 {
		return img
	}

	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()
	if srcWidth <= maxWidth {
		return img
	}

	scale := float64(maxWidth) / float64(srcWidth)
	newHeight := int(float64(srcHeight) * scale)
	if newHeight < 1 {
		newHeight = 1
	}

	resized := image.NewRGBA(image.Rect(0, 0, maxWidth, newHeight))
	xdraw.BiLinear.Scale(resized, resized.Bounds(), img, bounds, xdraw.Over, nil)
	return resized
}
