package imageprocessing

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
)

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.png", true},
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"photo.gif", true},
		{"photo.webp", true},
		{"photo.tiff", false},
		{"photo.bmp", false},
		{"photo", false},
		{"photo.png.exe", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := AllowedFile(tt.filename); got != tt.want {
			t.Errorf("AllowedFile(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	img, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", img.Bounds())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := Decode(strings.NewReader("definitely not an image"))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("error %q does not match ErrDecode", err)
	}
}

func TestScaleToMaxWidth(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 40))

	scaled := ScaleToMaxWidth(src, 50)
	if scaled.Bounds().Dx() != 50 || scaled.Bounds().Dy() != 20 {
		t.Errorf("scaled to %v, want 50x20", scaled.Bounds())
	}

	// Already small enough: returned unchanged, never upscaled.
	if got := ScaleToMaxWidth(src, 200); got != src {
		t.Error("image within limit was not returned as-is")
	}
	if got := ScaleToMaxWidth(src, 0); got != src {
		t.Error("zero max width should disable scaling")
	}
}
