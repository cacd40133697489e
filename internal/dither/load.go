package dither

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// paletteFile is the YAML shape for user-supplied palettes:
//
//	palettes:
//	  - id: my-palette
//	    name: My Palette
//	    category: custom
//	    colors: ["#000000", "#ff8800", "#ffffff"]
type paletteFile struct {
	Palettes []struct {
		ID       string   `yaml:"id"`
		Name     string   `yaml:"name"`
		Category string   `yaml:"category"`
		Colors   []string `yaml:"colors"`
	} `yaml:"palettes"`
}

// LoadPresetsFile merges palettes from a YAML file into the preset
// registry. Entries with an existing id replace the built-in preset.
// Returns the number of palettes loaded.
func LoadPresetsFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read palettes file: %w", err)
	}
	var pf paletteFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return 0, fmt.Errorf("parse palettes file: %w", err)
	}
	for _, entry := range pf.Palettes {
		if entry.ID == "" {
			return 0, fmt.Errorf("palette with no id in %s", path)
		}
		p, err := ParsePalette(entry.Colors)
		if err != nil {
			return 0, fmt.Errorf("palette %s: %w", entry.ID, err)
		}
		RegisterPreset(entry.ID, entry.Name, entry.Category, p)
	}
	return len(pf.Palettes), nil
}
