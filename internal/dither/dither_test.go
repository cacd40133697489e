package dither

import (
	"testing"
)

// testImageRGB fills a 3-channel buffer with a deterministic gradient plus
// a diagonal color ramp, enough structure to exercise every algorithm.
func testImageRGB(w, h int) *Buffer {
	buf, _ := NewBuffer(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := buf.index(x, y)
			buf.Samples[i] = float64((x * 255) / (w - 1))
			buf.Samples[i+1] = float64((y * 255) / (h - 1))
			buf.Samples[i+2] = float64(((x + y) * 255) / (w + h - 2))
		}
	}
	return buf
}

func testImageGray(w, h int) *Buffer {
	buf, _ := NewBuffer(w, h, 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Samples[buf.index(x, y)] = float64(((x + y*w) * 255) / (w*h - 1))
		}
	}
	return buf
}

func paletteContains(p *Palette, r, g, b float64) bool {
	for _, c := range p.Colors() {
		if float64(c.R) == r && float64(c.G) == g && float64(c.B) == b {
			return true
		}
	}
	return false
}

func TestPaletteClosure(t *testing.T) {
	engine := NewEngine()
	palettes := map[string]*Palette{}
	for _, id := range []string{"bw", "gameboy", "sepia", "c64"} {
		preset, ok := LookupPreset(id)
		if !ok {
			t.Fatalf("missing preset %s", id)
		}
		palettes[id] = preset.Palette
	}

	for _, algo := range Algorithms() {
		for id, pal := range palettes {
			t.Run(string(algo)+"/"+id, func(t *testing.T) {
				out, err := engine.Apply(testImageRGB(16, 16), algo, pal)
				if err != nil {
					t.Fatalf("Apply: %v", err)
				}
				for p := 0; p < out.Width*out.Height; p++ {
					i := p * 3
					r, g, b := out.Samples[i], out.Samples[i+1], out.Samples[i+2]
					if !paletteContains(pal, r, g, b) {
						t.Fatalf("pixel %d = (%v,%v,%v) not in palette %s", p, r, g, b, id)
					}
				}
			})
		}
	}
}

// Chromatic palette entries have fractional luminances; grayscale output
// must land on whole levels that survive byte conversion unchanged.
func TestGrayscaleClosureChromaticPalette(t *testing.T) {
	preset, ok := LookupPreset("sepia")
	if !ok {
		t.Fatal("missing sepia preset")
	}
	pal := preset.Palette

	allowed := map[float64]bool{}
	for _, c := range pal.Colors() {
		l := c.Luminance()
		r := float64(int(l + 0.5))
		allowed[r] = true
	}

	engine := NewEngine()
	for _, algo := range Algorithms() {
		out, err := engine.Apply(testImageGray(16, 16), algo, pal)
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		for i, s := range out.Samples {
			if s != float64(int(s)) {
				t.Fatalf("%s: sample %d = %v is not a whole level", algo, i, s)
			}
			if !allowed[s] {
				t.Fatalf("%s: sample %d = %v matches no palette entry luminance", algo, i, s)
			}
		}
	}
}

func TestShapePreservation(t *testing.T) {
	engine := NewEngine()
	for _, algo := range Algorithms() {
		src := testImageRGB(13, 7)
		out, err := engine.Apply(src, algo, nil)
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		if out.Width != 13 || out.Height != 7 || out.Channels != 3 {
			t.Errorf("%s: shape %dx%dx%d, want 13x7x3", algo, out.Width, out.Height, out.Channels)
		}
	}
}

func TestBinaryDegeneracy(t *testing.T) {
	engine := NewEngine()
	for _, algo := range Algorithms() {
		out, err := engine.Apply(testImageGray(16, 16), algo, nil)
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		for i, s := range out.Samples {
			if s != 0 && s != 255 {
				t.Fatalf("%s: sample %d = %v, want 0 or 255", algo, i, s)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	engine := NewEngine()
	for _, algo := range Algorithms() {
		a, err := engine.Apply(testImageRGB(24, 24), algo, nil)
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		b, err := engine.Apply(testImageRGB(24, 24), algo, nil)
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		for i := range a.Samples {
			if a.Samples[i] != b.Samples[i] {
				t.Fatalf("%s: sample %d differs between runs", algo, i)
			}
		}
	}
}

func TestApplyValidation(t *testing.T) {
	engine := NewEngine()
	buf := testImageGray(4, 4)

	if _, err := engine.Apply(buf, Algorithm("riemersma"), nil); err == nil {
		t.Error("expected error for unknown algorithm")
	}
	if _, err := engine.Apply(nil, AlgoOrdered, nil); err == nil {
		t.Error("expected error for nil buffer")
	}

	bad := &Buffer{Width: 4, Height: 4, Channels: 1, Samples: make([]float64, 3)}
	if _, err := engine.Apply(bad, AlgoOrdered, nil); err == nil {
		t.Error("expected error for malformed buffer")
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"floyd-steinberg", AlgoFloydSteinberg, false},
		{" Atkinson ", AlgoAtkinson, false},
		{"BLUE-NOISE", AlgoBlueNoise, false},
		{"sierra-two-row", AlgoSierraTwoRow, false},
		{"floydsteinberg", "", true},
		{"", "", true},
		{"median-cut", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAlgorithmsComplete(t *testing.T) {
	if got := len(Algorithms()); got != 12 {
		t.Fatalf("Algorithms() has %d entries, want 12", got)
	}
	for _, a := range Algorithms() {
		if _, err := ParseAlgorithm(string(a)); err != nil {
			t.Errorf("listed algorithm %q does not parse: %v", a, err)
		}
	}
}
