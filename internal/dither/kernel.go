package dither

// tap names one neighbor an error-diffusion kernel spills into. Offsets are
// causally forward in raster order: dy == 0 implies dx > 0, so a tap never
// touches an already finalized pixel.
type tap struct {
	dy, dx int
	weight float64
}

// Kernel is an immutable error-diffusion table. WeightSum is 1 for full
// kernels; Atkinson intentionally diffuses only 6/8 of the error and
// discards the rest.
type Kernel struct {
	Name string
	Taps []tap
}

// WeightSum returns the total diffused fraction of the quantization error.
func (k Kernel) WeightSum() float64 {
	var sum float64
	for _, t := range k.Taps {
		sum += t.weight
	}
	return sum
}

var (
	//        X   7
	//    3   5   1      (/16)
	FloydSteinberg = Kernel{Name: "floyd-steinberg", Taps: []tap{
		{0, 1, 7.0 / 16}, {1, -1, 3.0 / 16}, {1, 0, 5.0 / 16}, {1, 1, 1.0 / 16},
	}}

	//        X   1   1
	//    1   1   1      (/8, 2/8 discarded)
	//        1
	Atkinson = Kernel{Name: "atkinson", Taps: []tap{
		{0, 1, 1.0 / 8}, {0, 2, 1.0 / 8},
		{1, -1, 1.0 / 8}, {1, 0, 1.0 / 8}, {1, 1, 1.0 / 8},
		{2, 0, 1.0 / 8},
	}}

	//            X   8   4
	//    2   4   8   4   2      (/42)
	//    1   2   4   2   1
	Stucki = Kernel{Name: "stucki", Taps: []tap{
		{0, 1, 8.0 / 42}, {0, 2, 4.0 / 42},
		{1, -2, 2.0 / 42}, {1, -1, 4.0 / 42}, {1, 0, 8.0 / 42}, {1, 1, 4.0 / 42}, {1, 2, 2.0 / 42},
		{2, -2, 1.0 / 42}, {2, -1, 2.0 / 42}, {2, 0, 4.0 / 42}, {2, 1, 2.0 / 42}, {2, 2, 1.0 / 42},
	}}

	//            X   7   5
	//    3   5   7   5   3      (/48)
	//    1   3   5   3   1
	Jarvis = Kernel{Name: "jarvis", Taps: []tap{
		{0, 1, 7.0 / 48}, {0, 2, 5.0 / 48},
		{1, -2, 3.0 / 48}, {1, -1, 5.0 / 48}, {1, 0, 7.0 / 48}, {1, 1, 5.0 / 48}, {1, 2, 3.0 / 48},
		{2, -2, 1.0 / 48}, {2, -1, 3.0 / 48}, {2, 0, 5.0 / 48}, {2, 1, 3.0 / 48}, {2, 2, 1.0 / 48},
	}}

	//            X   8   4
	//    2   4   8   4   2      (/32)
	Burkes = Kernel{Name: "burkes", Taps: []tap{
		{0, 1, 8.0 / 32}, {0, 2, 4.0 / 32},
		{1, -2, 2.0 / 32}, {1, -1, 4.0 / 32}, {1, 0, 8.0 / 32}, {1, 1, 4.0 / 32}, {1, 2, 2.0 / 32},
	}}

	//            X   5   3
	//    2   4   5   4   2      (/32)
	//        2   3   2
	Sierra = Kernel{Name: "sierra", Taps: []tap{
		{0, 1, 5.0 / 32}, {0, 2, 3.0 / 32},
		{1, -2, 2.0 / 32}, {1, -1, 4.0 / 32}, {1, 0, 5.0 / 32}, {1, 1, 4.0 / 32}, {1, 2, 2.0 / 32},
		{2, -1, 2.0 / 32}, {2, 0, 3.0 / 32}, {2, 1, 2.0 / 32},
	}}

	//            X   4   3
	//    1   2   3   2   1      (/16)
	SierraTwoRow = Kernel{Name: "sierra-two-row", Taps: []tap{
		{0, 1, 4.0 / 16}, {0, 2, 3.0 / 16},
		{1, -2, 1.0 / 16}, {1, -1, 2.0 / 16}, {1, 0, 3.0 / 16}, {1, 1, 2.0 / 16}, {1, 2, 1.0 / 16},
	}}

	//        X   2
	//    1   1          (/4)
	SierraLite = Kernel{Name: "sierra-lite", Taps: []tap{
		{0, 1, 2.0 / 4}, {1, -1, 1.0 / 4}, {1, 0, 1.0 / 4},
	}}
)

// errorDiffuse runs the shared quantize/diffuse loop over a copy of src in
// strict raster order. Taps that fall outside the buffer are dropped
// without renormalizing the remaining weights, so some error mass is lost
// at the right and bottom edges.
func errorDiffuse(src *Buffer, k Kernel, p *Palette) *Buffer {
	buf := src.Clone()
	w, h := buf.Width, buf.Height
	if buf.Channels == 1 {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := buf.index(x, y)
				old := buf.Samples[i]
				chosen := p.NearestGray(old)
				buf.Samples[i] = chosen
				err := old - chosen
				for _, t := range k.Taps {
					nx, ny := x+t.dx, y+t.dy
					if nx < 0 || nx >= w || ny >= h {
						continue
					}
					buf.Samples[buf.index(nx, ny)] += err * t.weight
				}
			}
		}
		return buf
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := buf.index(x, y)
			oldR, oldG, oldB := buf.Samples[i], buf.Samples[i+1], buf.Samples[i+2]
			c := p.Nearest(oldR, oldG, oldB)
			buf.Samples[i] = float64(c.R)
			buf.Samples[i+1] = float64(c.G)
			buf.Samples[i+2] = float64(c.B)
			errR := oldR - float64(c.R)
			errG := oldG - float64(c.G)
			errB := oldB - float64(c.B)
			for _, t := range k.Taps {
				nx, ny := x+t.dx, y+t.dy
				if nx < 0 || nx >= w || ny >= h {
					continue
				}
				j := buf.index(nx, ny)
				buf.Samples[j] += errR * t.weight
				buf.Samples[j+1] += errG * t.weight
				buf.Samples[j+2] += errB * t.weight
			}
		}
	}
	return buf
}
