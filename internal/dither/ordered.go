package dither

import "math"

// thresholdMatrix is a small bias grid tiled across the image by modulo
// indexing. Values are raw matrix cells; callers scale them as needed.
type thresholdMatrix [4][4]float64

// Both the "ordered" and "bayer" variants use the same 4x4 index
// permutation; they differ in how the cell value is compared against the
// pixel. The ordered variant scales cells to 0..240 and compares raw gray
// levels, the Bayer variant normalizes cells to [0, 1) and compares
// normalized luminance.
var ditherMatrix = thresholdMatrix{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// orderedDither applies position-indexed thresholding with no error
// propagation. bayer selects the normalized comparison. Cross-pixel
// independence means average luminance is not preserved exactly; the
// systematic bias is the visual signature of this family.
func orderedDither(src *Buffer, p *Palette, bayer bool) *Buffer {
	buf := src.Clone()
	w, h := buf.Width, buf.Height

	if p.Binary() {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				cell := ditherMatrix[y%4][x%4]
				v := buf.Luminance(x, y)
				var on bool
				if bayer {
					on = v/255 > cell/16
				} else {
					on = v > cell*16
				}
				writePixel(buf, x, y, boolColor(on))
			}
		}
		return buf
	}

	sorted := p.ByLuminance()
	n := len(sorted)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			threshold := ditherMatrix[y%4][x%4] / 16
			lum := buf.Luminance(x, y) / 255
			adjusted := lum + (threshold-0.5)/float64(n)
			idx := int(adjusted * float64(n))
			if idx < 0 {
				idx = 0
			}
			if idx > n-1 {
				idx = n - 1
			}
			writePixel(buf, x, y, sorted[idx])
		}
	}
	return buf
}

func boolColor(on bool) Color {
	if on {
		return Color{255, 255, 255}
	}
	return Color{0, 0, 0}
}

// writePixel stores a palette color at (x, y) in either channel layout.
// Grayscale buffers take the entry's luminance rounded to a whole level.
func writePixel(b *Buffer, x, y int, c Color) {
	i := b.index(x, y)
	if b.Channels == 1 {
		b.Samples[i] = math.Round(c.Luminance())
		return
	}
	b.Samples[i] = float64(c.R)
	b.Samples[i+1] = float64(c.G)
	b.Samples[i+2] = float64(c.B)
}
