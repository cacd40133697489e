package imageprocessing

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func binaryGray(w, h int) *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for i := range gray.Pix {
		if i%2 == 0 {
			gray.Pix[i] = 255
		}
	}
	return gray
}

func TestEncodeGrayPNGRoundTrip(t *testing.T) {
	src := binaryGray(10, 6)
	data, err := EncodeGrayPNG(src, 1)
	if err != nil {
		t.Fatalf("EncodeGrayPNG: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	gray, ok := decoded.(*image.Gray)
	if !ok {
		t.Fatalf("decoded to %T, want *image.Gray", decoded)
	}
	if gray.Bounds() != src.Bounds() {
		t.Fatalf("bounds %v, want %v", gray.Bounds(), src.Bounds())
	}
	for i := range src.Pix {
		if gray.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel %d = %d, want %d", i, gray.Pix[i], src.Pix[i])
		}
	}
}

func TestEncodeGrayPNGFourLevels(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 1))
	for i, v := range []uint8{0, 85, 170, 255} {
		src.Pix[i] = v
	}
	data, err := EncodeGrayPNG(src, 2)
	if err != nil {
		t.Fatalf("EncodeGrayPNG: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	gray := decoded.(*image.Gray)
	for i := range src.Pix {
		if gray.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel %d = %d, want %d", i, gray.Pix[i], src.Pix[i])
		}
	}
}

func TestEncodeGrayPNGRejectsOffLevelValues(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1, 1))
	src.Pix[0] = 100
	if _, err := EncodeGrayPNG(src, 1); err == nil {
		t.Error("expected error for value off the 1-bit levels")
	}
	if _, err := EncodeGrayPNG(src, 3); err == nil {
		t.Error("expected error for unsupported bit depth")
	}
}

func TestGrayBitDepth(t *testing.T) {
	tests := []struct {
		name   string
		pixels []uint8
		want   int
	}{
		{"binary", []uint8{0, 255, 255, 0}, 1},
		{"four levels", []uint8{0, 85, 170, 255}, 2},
		{"sixteen levels", []uint8{0, 17, 34, 255}, 4},
		{"arbitrary", []uint8{0, 100, 200, 255}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gray := image.NewGray(image.Rect(0, 0, len(tt.pixels), 1))
			copy(gray.Pix, tt.pixels)
			if got := grayBitDepth(gray); got != tt.want {
				t.Errorf("grayBitDepth = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEncodePNGSelectsCompactDepth(t *testing.T) {
	data, err := EncodePNG(binaryGray(8, 8))
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 8 || cfg.Height != 8 {
		t.Errorf("config %dx%d, want 8x8", cfg.Width, cfg.Height)
	}
	// 1-bit packing beats the stdlib 8-bit encoding for a checkered image.
	full, err := EncodePNG(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if err != nil {
		t.Fatalf("EncodePNG rgba: %v", err)
	}
	if len(data) == 0 || len(full) == 0 {
		t.Fatal("empty encodings")
	}
}
