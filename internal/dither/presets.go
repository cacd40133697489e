package dither

import (
	"fmt"
	"sort"
	"sync"
)

// Preset is a named palette with display metadata.
type Preset struct {
	ID       string
	Name     string
	Category string
	Palette  *Palette
}

var (
	presetMu sync.RWMutex
	presets  = map[string]Preset{}
)

func mustPreset(id, name, category string, colors []Color) {
	p, err := NewPalette(colors)
	if err != nil {
		panic(fmt.Sprintf("preset %s: %v", id, err))
	}
	presets[id] = Preset{ID: id, Name: name, Category: category, Palette: p}
}

func init() {
	mustPreset("bw", "Black & White", "classic", []Color{
		{0, 0, 0},
		{255, 255, 255},
	})
	mustPreset("gameboy", "Game Boy", "retro", []Color{
		{15, 56, 15},
		{48, 98, 48},
		{139, 172, 15},
		{155, 188, 15},
	})
	mustPreset("gameboy-pocket", "Game Boy Pocket", "retro", []Color{
		{0, 0, 0},
		{85, 85, 85},
		{170, 170, 170},
		{255, 255, 255},
	})
	// Commonly used subset of the NES palette.
	mustPreset("nes", "NES", "retro", []Color{
		{0, 0, 0}, {252, 252, 252}, {188, 188, 188}, {124, 124, 124},
		{164, 0, 0}, {228, 0, 88}, {216, 40, 120}, {252, 116, 180},
		{0, 120, 248}, {104, 68, 252}, {248, 120, 88}, {248, 56, 0},
		{0, 168, 0}, {0, 168, 68}, {184, 248, 24}, {172, 124, 0},
		{248, 184, 0}, {248, 216, 120}, {0, 0, 168}, {0, 88, 248},
		{88, 216, 84}, {152, 120, 248}, {248, 88, 152}, {60, 188, 252},
	})
	mustPreset("c64", "Commodore 64", "retro", []Color{
		{0, 0, 0}, {255, 255, 255}, {136, 0, 0}, {170, 255, 238},
		{204, 68, 204}, {0, 204, 85}, {0, 0, 170}, {238, 238, 119},
		{221, 136, 85}, {102, 68, 0}, {255, 119, 119}, {51, 51, 51},
		{119, 119, 119}, {170, 255, 102}, {0, 136, 255}, {187, 187, 187},
	})
	mustPreset("cga-mode4-p1", "CGA Mode 4 (Cyan)", "retro", []Color{
		{0, 0, 0},
		{0, 255, 255},
		{255, 0, 255},
		{255, 255, 255},
	})
	mustPreset("cga-mode4-p0", "CGA Mode 4 (Green)", "retro", []Color{
		{0, 0, 0},
		{0, 255, 0},
		{255, 0, 0},
		{255, 255, 0},
	})
	mustPreset("sepia", "Sepia", "artistic", []Color{
		{44, 33, 24},
		{92, 64, 51},
		{155, 118, 83},
		{199, 172, 132},
		{242, 227, 198},
	})
	mustPreset("nord", "Nord", "modern", []Color{
		{46, 52, 64}, {59, 66, 82}, {67, 76, 94}, {76, 86, 106},
		{216, 222, 233}, {229, 233, 240}, {236, 239, 244},
		{143, 188, 187}, {136, 192, 208}, {129, 161, 193}, {94, 129, 172},
		{191, 97, 106}, {208, 135, 112}, {235, 203, 139}, {163, 190, 140},
		{180, 142, 173},
	})
}

// DefaultPalette returns the 2-entry black/white palette.
func DefaultPalette() *Palette {
	p, _ := LookupPreset("bw")
	return p.Palette
}

// LookupPreset returns the preset registered under id.
func LookupPreset(id string) (Preset, bool) {
	presetMu.RLock()
	defer presetMu.RUnlock()
	p, ok := presets[id]
	return p, ok
}

// RegisterPreset adds or replaces a named palette. Intended for merging
// user-supplied palettes at startup, before the engine starts serving.
func RegisterPreset(id, name, category string, palette *Palette) {
	if category == "" {
		category = "custom"
	}
	if name == "" {
		name = id
	}
	presetMu.Lock()
	defer presetMu.Unlock()
	presets[id] = Preset{ID: id, Name: name, Category: category, Palette: palette}
}

// Presets returns all registered presets sorted by id.
func Presets() []Preset {
	presetMu.RLock()
	defer presetMu.RUnlock()
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
