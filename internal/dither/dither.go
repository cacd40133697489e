// Package dither converts full-color or grayscale pixel buffers into
// images restricted to a small fixed palette, approximating the original
// tones through spatial patterning. It implements the classic
// error-diffusion family, ordered/Bayer thresholding, halftone screens and
// blue-noise thresholding, all extended from binary black/white to
// arbitrary palettes.
package dither

import (
	"fmt"
	"strings"
)

// Algorithm identifies one dithering strategy. The set is closed; anything
// else is a request validation failure.
type Algorithm string

const (
	AlgoFloydSteinberg Algorithm = "floyd-steinberg"
	AlgoAtkinson       Algorithm = "atkinson"
	AlgoStucki         Algorithm = "stucki"
	AlgoJarvis         Algorithm = "jarvis"
	AlgoBurkes         Algorithm = "burkes"
	AlgoSierra         Algorithm = "sierra"
	AlgoSierraTwoRow   Algorithm = "sierra-two-row"
	AlgoSierraLite     Algorithm = "sierra-lite"
	AlgoOrdered        Algorithm = "ordered"
	AlgoBayer          Algorithm = "bayer"
	AlgoHalftone       Algorithm = "halftone"
	AlgoBlueNoise      Algorithm = "blue-noise"
)

// kernels maps the error-diffusion identifiers to their tables.
var kernels = map[Algorithm]Kernel{
	AlgoFloydSteinberg: FloydSteinberg,
	AlgoAtkinson:       Atkinson,
	AlgoStucki:         Stucki,
	AlgoJarvis:         Jarvis,
	AlgoBurkes:         Burkes,
	AlgoSierra:         Sierra,
	AlgoSierraTwoRow:   SierraTwoRow,
	AlgoSierraLite:     SierraLite,
}

// Algorithms returns every recognized identifier, error-diffusion variants
// first, in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgoFloydSteinberg, AlgoAtkinson, AlgoStucki, AlgoJarvis,
		AlgoBurkes, AlgoSierra, AlgoSierraTwoRow, AlgoSierraLite,
		AlgoOrdered, AlgoBayer, AlgoHalftone, AlgoBlueNoise,
	}
}

// ParseAlgorithm validates a user-supplied identifier.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kernels[a]; ok {
		return a, nil
	}
	switch a {
	case AlgoOrdered, AlgoBayer, AlgoHalftone, AlgoBlueNoise:
		return a, nil
	}
	return "", fmt.Errorf("unknown dithering algorithm %q", s)
}

// Engine dispatches dither requests to the individual strategies. The zero
// value is not usable; construct with NewEngine.
type Engine struct {
	noise *BlueNoise
}

// NewEngine returns an engine using the shared process-wide blue-noise
// texture.
func NewEngine() *Engine {
	return &Engine{noise: sharedBlueNoise()}
}

// NewEngineWithNoise returns an engine with an injected texture, keeping
// tests hermetic.
func NewEngineWithNoise(noise *BlueNoise) *Engine {
	return &Engine{noise: noise}
}

// Apply runs the named algorithm over src against the palette and returns
// a new buffer of identical shape whose every sample equals a palette
// entry. A nil palette selects the default black/white pair. Validation
// failures are reported before any work happens; src is never mutated.
func (e *Engine) Apply(src *Buffer, algo Algorithm, palette *Palette) (*Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("nil source buffer")
	}
	if len(src.Samples) != src.Width*src.Height*src.Channels {
		return nil, fmt.Errorf("malformed buffer: %d samples for %dx%dx%d",
			len(src.Samples), src.Width, src.Height, src.Channels)
	}
	if palette == nil {
		palette = DefaultPalette()
	}
	if palette.Len() < 2 {
		return nil, fmt.Errorf("palette needs at least 2 colors, got %d", palette.Len())
	}

	if k, ok := kernels[algo]; ok {
		return errorDiffuse(src, k, palette), nil
	}
	switch algo {
	case AlgoOrdered:
		return orderedDither(src, palette, false), nil
	case AlgoBayer:
		return orderedDither(src, palette, true), nil
	case AlgoHalftone:
		return halftone(src, palette), nil
	case AlgoBlueNoise:
		return blueNoiseDither(src, palette, e.noise), nil
	}
	return nil, fmt.Errorf("unknown dithering algorithm %q", algo)
}
