package cgbipng

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

// IHDR field values the transform requires, as per the PNG spec.
const (
	ihdrLength        = 13
	bitDepth8         = 8
	colorTrueColorA   = 6
	interlaceNone     = 0
	bytesPerPixel     = 4
	filterBytePerLine = 1
)

// imageInfo holds the IHDR fields the transform depends on.
type imageInfo struct {
	width     int
	height    int
	bitDepth  byte
	colorType byte
	interlace byte
}

func (info imageInfo) scanlineSize() int {
	return filterBytePerLine + info.width*bytesPerPixel
}

// parseIHDR extracts dimensions and layout from IHDR chunk data and rejects
// layouts the fixed RGBA8 transform would silently corrupt.
func parseIHDR(data []byte) (imageInfo, error) {
	if len(data) != ihdrLength {
		return imageInfo{}, fmt.Errorf("%w: IHDR length %d, want %d", ErrTruncatedChunk, len(data), ihdrLength)
	}
	info := imageInfo{
		width:     int(binary.BigEndian.Uint32(data[0:4])),
		height:    int(binary.BigEndian.Uint32(data[4:8])),
		bitDepth:  data[8],
		colorType: data[9],
		interlace: data[12],
	}
	if info.width <= 0 || info.height <= 0 {
		return imageInfo{}, fmt.Errorf("%w: invalid dimensions %dx%d", ErrUnsupportedImage, info.width, info.height)
	}
	if info.bitDepth != bitDepth8 || info.colorType != colorTrueColorA {
		return imageInfo{}, fmt.Errorf("%w: bit depth %d, color type %d (need 8-bit RGBA)",
			ErrUnsupportedImage, info.bitDepth, info.colorType)
	}
	if info.interlace != interlaceNone {
		return imageInfo{}, fmt.Errorf("%w: interlaced images are not supported", ErrUnsupportedImage)
	}
	return info, nil
}

// restoreImageData converts a CgBI IDAT payload to a standard one:
// raw-DEFLATE decompress, swap byte 0 and byte 2 of every pixel (BGRA to
// RGBA, filter bytes untouched), recompress as zlib at the fastest level.
func restoreImageData(compressed []byte, info imageInfo) ([]byte, error) {
	// CgBI stores bare DEFLATE, so zlib.NewReader would fail on the
	// missing header.
	fr := flate.NewReader(bytes.NewReader(compressed))
	raw, err := io.ReadAll(fr)
	fr.Close()
	if err != nil {
		return nil, fmt.Errorf("cgbipng: inflating image data: %w", err)
	}

	want := info.height * info.scanlineSize()
	if len(raw) < want {
		return nil, fmt.Errorf("%w: %d bytes of pixel data, want %d", ErrTruncatedChunk, len(raw), want)
	}

	swapChannels(raw, info.width, info.height)

	var out bytes.Buffer
	zw, err := zlib.NewWriterLevel(&out, zlib.BestSpeed)
	if err != nil {
		return nil, fmt.Errorf("cgbipng: creating zlib writer: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("cgbipng: deflating image data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("cgbipng: flushing zlib stream: %w", err)
	}
	return out.Bytes(), nil
}

// swapChannels exchanges the red and blue bytes of every pixel in place.
// Each scanline is one filter byte followed by width 4-byte pixels.
func swapChannels(raw []byte, width, height int) {
	i := 0
	for y := 0; y < height; y++ {
		i += filterBytePerLine
		for x := 0; x < width; x++ {
			raw[i], raw[i+2] = raw[i+2], raw[i]
			i += bytesPerPixel
		}
	}
}
