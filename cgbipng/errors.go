// Package cgbipng converts Apple CgBI ("crushed") PNG byte streams back into
// standard-conformant PNGs. CgBI files differ from the PNG spec in three ways:
// a private CgBI chunk before IHDR, IDAT compressed with bare DEFLATE instead
// of zlib-wrapped DEFLATE, and pixel channels stored as BGRA instead of RGBA.
// Convert undoes all three and leaves everything else byte-identical.
package cgbipng

import "errors"

// Sentinel errors for the conversion engine.
var (
	// ErrNotPNG indicates the input does not start with the PNG signature.
	ErrNotPNG = errors.New("cgbipng: not a PNG file")

	// ErrTruncatedChunk indicates a chunk declared more bytes than the
	// buffer holds, or the buffer ended mid-chunk.
	ErrTruncatedChunk = errors.New("cgbipng: truncated chunk")

	// ErrUnsupportedImage indicates IHDR declares a layout the fixed
	// RGBA8 transform cannot handle (non-8-bit depth, non-truecolor-alpha
	// color type, or interlacing).
	ErrUnsupportedImage = errors.New("cgbipng: unsupported image format")

	// ErrChunkOrder indicates IDAT appeared before IHDR, so the scanline
	// layout is unknown.
	ErrChunkOrder = errors.New("cgbipng: chunk out of order")
)
