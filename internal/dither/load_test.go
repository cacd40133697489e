package dither

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPresetsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palettes.yaml")
	content := `palettes:
  - id: duotone-test
    name: Duotone
    category: artistic
    colors: ["#1a1a2e", "#e94560"]
  - id: no-meta-test
    colors: ["000000", "#808080", "#fff"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := LoadPresetsFile(path)
	if err != nil {
		t.Fatalf("LoadPresetsFile: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded %d palettes, want 2", n)
	}

	p, ok := LookupPreset("duotone-test")
	if !ok {
		t.Fatal("duotone-test not registered")
	}
	if p.Name != "Duotone" || p.Category != "artistic" || p.Palette.Len() != 2 {
		t.Errorf("unexpected preset: %+v", p)
	}

	p, ok = LookupPreset("no-meta-test")
	if !ok {
		t.Fatal("no-meta-test not registered")
	}
	if p.Name != "no-meta-test" || p.Category != "custom" {
		t.Errorf("metadata defaults not applied: %+v", p)
	}
	if p.Palette.Len() != 3 {
		t.Errorf("palette has %d colors, want 3", p.Palette.Len())
	}
}

func TestLoadPresetsFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPresetsFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("palettes:\n  - id: short\n    colors: [\"#000000\"]\n"), 0o644)
	if _, err := LoadPresetsFile(bad); err == nil {
		t.Error("expected error for single-color palette")
	}

	noID := filepath.Join(dir, "noid.yaml")
	os.WriteFile(noID, []byte("palettes:\n  - colors: [\"#000000\", \"#ffffff\"]\n"), 0o644)
	if _, err := LoadPresetsFile(noID); err == nil {
		t.Error("expected error for palette without id")
	}
}
