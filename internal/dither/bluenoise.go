package dither

import (
	"math/rand"
	"sort"
	"sync"
)

const (
	blueNoiseSize = 64
	blueNoiseSeed = 42
)

// BlueNoise is a square threshold texture with suppressed low-frequency
// clustering, tiled across the image like an ordered matrix but without its
// repeating structure. Read-only after construction, so one instance is
// safe to share across concurrent calls.
type BlueNoise struct {
	size int
	vals []float64 // [0, 1), row-major
}

// NewBlueNoise builds a size x size texture from the given seed. The same
// seed always yields the same texture. White noise is high-pass filtered
// by subtracting a toroidal 3x3 neighborhood mean, which strips the
// low-frequency clumps, then rank-equalized so the thresholds are
// uniformly distributed over [0, 1).
func NewBlueNoise(size int, seed int64) *BlueNoise {
	rng := rand.New(rand.NewSource(seed))
	n := size * size
	raw := make([]float64, n)
	for i := range raw {
		raw[i] = rng.Float64()
	}

	smooth := make([]float64, n)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var sum float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sum += raw[((y+dy+size)%size)*size+(x+dx+size)%size]
				}
			}
			smooth[y*size+x] = raw[y*size+x] - sum/9
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return smooth[order[i]] < smooth[order[j]]
	})
	vals := make([]float64, n)
	for rank, i := range order {
		vals[i] = float64(rank) / float64(n)
	}
	return &BlueNoise{size: size, vals: vals}
}

// At returns the threshold for (x, y), tiling by modulo.
func (bn *BlueNoise) At(x, y int) float64 {
	return bn.vals[(y%bn.size)*bn.size+x%bn.size]
}

var (
	blueNoiseOnce    sync.Once
	defaultBlueNoise *BlueNoise
)

// sharedBlueNoise returns the process-wide texture, built once on first use.
func sharedBlueNoise() *BlueNoise {
	blueNoiseOnce.Do(func() {
		defaultBlueNoise = NewBlueNoise(blueNoiseSize, blueNoiseSeed)
	})
	return defaultBlueNoise
}

// blueNoiseDither thresholds normalized luminance against the texture,
// producing the brightest palette entry where luminance wins and the
// darkest elsewhere.
func blueNoiseDither(src *Buffer, p *Palette, bn *BlueNoise) *Buffer {
	buf := src.Clone()
	dark := p.Darkest()
	bright := p.Brightest()
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if buf.Luminance(x, y)/255 > bn.At(x, y) {
				writePixel(buf, x, y, bright)
			} else {
				writePixel(buf, x, y, dark)
			}
		}
	}
	return buf
}
