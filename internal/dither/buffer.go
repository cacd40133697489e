package dither

import (
	"fmt"
	"image"
	"image/color"
)

// Buffer is the working pixel representation shared by every algorithm.
// Samples are stored row-major and channel-interleaved as float64 so that
// error diffusion can accumulate sub-integer values between pixels. Values
// are only clamped back to [0, 255] when the buffer is finalized into an
// image.
type Buffer struct {
	Width    int
	Height   int
	Channels int // 1 = luminance, 3 = RGB
	Samples  []float64
}

// NewBuffer allocates a zeroed buffer with the given dimensions.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid buffer dimensions %dx%d", width, height)
	}
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Samples:  make([]float64, width*height*channels),
	}, nil
}

// FromGrayscale converts an image to a 1-channel buffer using the
// Y = 0.299*R + 0.587*G + 0.114*B luminance formula.
func FromGrayscale(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf, _ := NewBuffer(bounds.Dx(), bounds.Dy(), 1)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			buf.Samples[i] = float64(g.Y)
			i++
		}
	}
	return buf
}

// FromRGB converts an image to a 3-channel buffer, discarding alpha.
func FromRGB(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf, _ := NewBuffer(bounds.Dx(), bounds.Dy(), 3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			buf.Samples[i] = float64(r >> 8)
			buf.Samples[i+1] = float64(g >> 8)
			buf.Samples[i+2] = float64(b >> 8)
			i += 3
		}
	}
	return buf
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Samples:  make([]float64, len(b.Samples)),
	}
	copy(out.Samples, b.Samples)
	return out
}

// index returns the sample offset of the first channel at (x, y).
func (b *Buffer) index(x, y int) int {
	return (y*b.Width + x) * b.Channels
}

// Luminance returns the perceived brightness of the pixel at (x, y) in the
// 0-255 range, without clamping accumulated error.
func (b *Buffer) Luminance(x, y int) float64 {
	i := b.index(x, y)
	if b.Channels == 1 {
		return b.Samples[i]
	}
	return 0.299*b.Samples[i] + 0.587*b.Samples[i+1] + 0.114*b.Samples[i+2]
}

// ToImage finalizes the buffer into an image, clamping every sample to
// [0, 255]. 1-channel buffers become *image.Gray, 3-channel *image.RGBA.
func (b *Buffer) ToImage() image.Image {
	if b.Channels == 1 {
		gray := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
		for i, s := range b.Samples {
			gray.Pix[i] = clampByte(s)
		}
		return gray
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for p := 0; p < b.Width*b.Height; p++ {
		i := p * 3
		rgba.Pix[p*4] = clampByte(b.Samples[i])
		rgba.Pix[p*4+1] = clampByte(b.Samples[i+1])
		rgba.Pix[p*4+2] = clampByte(b.Samples[i+2])
		rgba.Pix[p*4+3] = 255
	}
	return rgba
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
