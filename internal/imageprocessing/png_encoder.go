package imageprocessing

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
)

// EncodePNG encodes a processed image to PNG. Grayscale results whose
// levels fit a low bit depth are written as compact color-type-0 PNGs via
// EncodeGrayPNG; everything else goes through the standard encoder.
func EncodePNG(img image.Image) ([]byte, error) {
	if gray, ok := img.(*image.Gray); ok {
		if depth := grayBitDepth(gray); depth < 8 {
			return EncodeGrayPNG(gray, depth)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// grayBitDepth returns the smallest PNG grayscale bit depth (1, 2, 4 or 8)
// whose evenly spaced levels cover every pixel value in the image.
func grayBitDepth(gray *image.Gray) int {
	for _, depth := range []int{1, 2, 4} {
		levels := 1 << depth
		step := 255 / (levels - 1)
		ok := true
		for _, v := range gray.Pix {
			if int(v)%step != 0 {
				ok = false
				break
			}
		}
		if ok {
			return depth
		}
	}
	return 8
}

// EncodeGrayPNG writes a grayscale image as a bit-packed PNG with color
// type 0 at the given bit depth. Pixel values must sit on the evenly
// spaced levels of that depth (0 and 255 for 1-bit, 0/85/170/255 for
// 2-bit, multiples of 17 for 4-bit).
func EncodeGrayPNG(gray *image.Gray, bitDepth int) ([]byte, error) {
	if bitDepth != 1 && bitDepth != 2 && bitDepth != 4 && bitDepth != 8 {
		return nil, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}

	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var buf bytes.Buffer

	// PNG signature
	buf.Write([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})

	writeChunk(&buf, "IHDR", func(data *bytes.Buffer) {
		binary.Write(data, binary.BigEndian, uint32(width))
		binary.Write(data, binary.BigEndian, uint32(height))
		data.WriteByte(uint8(bitDepth))
		data.WriteByte(0) // Color type: grayscale
		data.WriteByte(0) // Compression method
		data.WriteByte(0) // Filter method
		data.WriteByte(0) // Interlace method
	})

	imageData, err := packGrayData(gray, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to pack image data: %w", err)
	}
	compressed, err := zlibCompress(imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to compress image data: %w", err)
	}
	writeChunk(&buf, "IDAT", func(data *bytes.Buffer) {
		data.Write(compressed)
	})
	writeChunk(&buf, "IEND", func(data *bytes.Buffer) {})

	return buf.Bytes(), nil
}

// packGrayData packs 8-bit gray samples down to bitDepth with a None
// filter byte per row.
func packGrayData(gray *image.Gray, bitDepth int) ([]byte, error) {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	levels := 1 << bitDepth
	step := 255 / (levels - 1)
	pixelsPerByte := 8 / bitDepth
	bytesPerRow := (width + pixelsPerByte - 1) / pixelsPerByte

	data := make([]byte, height*(bytesPerRow+1))
	for y := 0; y < height; y++ {
		rowStart := y * (bytesPerRow + 1)
		data[rowStart] = 0 // Filter type: None
		for x := 0; x < width; x++ {
			v := gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			level := int(v) / step
			if int(v)%step != 0 {
				return nil, fmt.Errorf("gray value %d does not fit %d-bit depth", v, bitDepth)
			}
			byteIndex := rowStart + 1 + x/pixelsPerByte
			bitOffset := (pixelsPerByte - 1 - (x % pixelsPerByte)) * bitDepth
			data[byteIndex] |= uint8(level) << bitOffset
		}
	}
	return data, nil
}

// writeChunk writes a PNG chunk with its CRC.
func writeChunk(buf *bytes.Buffer, chunkType string, dataWriter func(*bytes.Buffer)) {
	var chunkData bytes.Buffer
	dataWriter(&chunkData)
	data := chunkData.Bytes()

	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.WriteString(chunkType)
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(data)
	binary.Write(buf, binary.BigEndian, crc.Sum32())
}

func zlibCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
