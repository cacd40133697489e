package dither

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Color is one palette entry in 8-bit RGB.
type Color struct {
	R, G, B uint8
}

// Luminance returns the Rec. 601 brightness of the color in [0, 255].
// Achromatic colors return their gray level exactly.
func (c Color) Luminance() float64 {
	if c.R == c.G && c.G == c.B {
		return float64(c.R)
	}
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Hex returns the color as a #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses "#rrggbb", "rrggbb" or "#rgb". Every character must
// be a hex digit; malformed input is an error, never a partial parse.
func ParseHexColor(s string) (Color, error) {
	orig := s
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 6:
		r, err1 := strconv.ParseUint(s[0:2], 16, 8)
		g, err2 := strconv.ParseUint(s[2:4], 16, 8)
		b, err3 := strconv.ParseUint(s[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("invalid hex color %q", orig)
		}
		return Color{uint8(r), uint8(g), uint8(b)}, nil
	case 3:
		r, err1 := strconv.ParseUint(s[0:1], 16, 8)
		g, err2 := strconv.ParseUint(s[1:2], 16, 8)
		b, err3 := strconv.ParseUint(s[2:3], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("invalid hex color %q", orig)
		}
		return Color{uint8(r) * 17, uint8(g) * 17, uint8(b) * 17}, nil
	}
	return Color{}, fmt.Errorf("invalid hex color %q", orig)
}

// Palette is an ordered, read-only set of output colors. Every algorithm
// guarantees that each output pixel equals one of its entries exactly.
type Palette struct {
	colors []Color
	sorted []Color // entries ordered by ascending luminance
	binary bool    // exactly {black, white}, enabling the fast path
}

// NewPalette builds a palette from at least two colors. The input order is
// preserved; nearest-color ties break toward the earlier entry.
func NewPalette(colors []Color) (*Palette, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("palette needs at least 2 colors, got %d", len(colors))
	}
	p := &Palette{colors: append([]Color(nil), colors...)}
	p.sorted = append([]Color(nil), p.colors...)
	sort.SliceStable(p.sorted, func(i, j int) bool {
		return p.sorted[i].Luminance() < p.sorted[j].Luminance()
	})
	p.binary = len(p.colors) == 2 &&
		p.sorted[0] == Color{0, 0, 0} &&
		p.sorted[1] == Color{255, 255, 255}
	return p, nil
}

// ParsePalette builds a palette from a list of hex color strings.
func ParsePalette(hexes []string) (*Palette, error) {
	colors := make([]Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return NewPalette(colors)
}

// Len returns the number of entries.
func (p *Palette) Len() int { return len(p.colors) }

// Colors returns the entries in their original order.
func (p *Palette) Colors() []Color { return p.colors }

// Binary reports whether the palette is exactly {black, white}.
func (p *Palette) Binary() bool { return p.binary }

// ByLuminance returns the entries ordered from darkest to brightest.
func (p *Palette) ByLuminance() []Color { return p.sorted }

// Darkest returns the entry with the lowest luminance.
func (p *Palette) Darkest() Color { return p.sorted[0] }

// Brightest returns the entry with the highest luminance.
func (p *Palette) Brightest() Color { return p.sorted[len(p.sorted)-1] }

// Nearest returns the palette entry closest to the (possibly out-of-range)
// RGB sample by squared Euclidean distance. Inputs are clamped to [0, 255]
// before the search. Ties resolve to the first entry in palette order.
func (p *Palette) Nearest(r, g, b float64) Color {
	r = clampChannel(r)
	g = clampChannel(g)
	b = clampChannel(b)
	best := 0
	bestDist := colorDistSq(p.colors[0], r, g, b)
	for i := 1; i < len(p.colors); i++ {
		if d := colorDistSq(p.colors[i], r, g, b); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return p.colors[best]
}

// NearestGray maps a 1-channel sample onto the luminance of the nearest
// entry, comparing against each entry's own luminance. The result is
// rounded to a whole level so finalizing the buffer cannot shift it off
// the chosen entry.
func (p *Palette) NearestGray(v float64) float64 {
	v = clampChannel(v)
	if p.binary {
		if v > 127 {
			return 255
		}
		return 0
	}
	best := p.colors[0].Luminance()
	bestDist := (v - best) * (v - best)
	for _, c := range p.colors[1:] {
		l := c.Luminance()
		if d := (v - l) * (v - l); d < bestDist {
			best = l
			bestDist = d
		}
	}
	return math.Round(best)
}

func colorDistSq(c Color, r, g, b float64) float64 {
	dr := float64(c.R) - r
	dg := float64(c.G) - g
	db := float64(c.B) - b
	return dr*dr + dg*dg + db*db
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
