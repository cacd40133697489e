package dither

// halftoneCellSize is the square cell side used by the halftone screen.
const halftoneCellSize = 4

// halftone renders a print-style screen: each cell collapses to a single
// dot whose radius grows as the cell darkens. The darkest palette entry is
// the ink, the brightest the paper. Partial cells at the right/bottom edge
// average only the samples that exist.
func halftone(src *Buffer, p *Palette) *Buffer {
	buf := src.Clone()
	w, h := buf.Width, buf.Height
	ink := p.Darkest()
	paper := p.Brightest()
	maxRadius := float64(halftoneCellSize) / 2

	for cy := 0; cy < h; cy += halftoneCellSize {
		for cx := 0; cx < w; cx += halftoneCellSize {
			x1 := cx + halftoneCellSize
			if x1 > w {
				x1 = w
			}
			y1 := cy + halftoneCellSize
			if y1 > h {
				y1 = h
			}

			var sum float64
			for y := cy; y < y1; y++ {
				for x := cx; x < x1; x++ {
					sum += buf.Luminance(x, y)
				}
			}
			mean := sum / float64((x1-cx)*(y1-cy))
			radius := (1 - mean/255) * maxRadius

			centerX := float64(cx+x1-1) / 2
			centerY := float64(cy+y1-1) / 2
			for y := cy; y < y1; y++ {
				for x := cx; x < x1; x++ {
					dx := float64(x) - centerX
					dy := float64(y) - centerY
					if dx*dx+dy*dy <= radius*radius {
						writePixel(buf, x, y, ink)
					} else {
						writePixel(buf, x, y, paper)
					}
				}
			}
		}
	}
	return buf
}
