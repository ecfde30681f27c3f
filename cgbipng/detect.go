package cgbipng

import "bytes"

// pngSignature is the fixed 8-byte PNG magic: 89 50 4E 47 0D 0A 1A 0A.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// HasSignature reports whether data starts with the PNG magic bytes.
func HasSignature(data []byte) bool {
	if len(data) < len(pngSignature) {
		return false
	}
	return bytes.Equal(data[:len(pngSignature)], pngSignature)
}

// IsCrushed reports whether data is a PNG whose first chunk is the Apple
// CgBI marker. The first chunk tag is peeked without consuming it.
func IsCrushed(data []byte) bool {
	if !HasSignature(data) {
		return false
	}
	r := chunkReader{buf: data, pos: len(pngSignature)}
	tag, ok := r.peekTag()
	return ok && tag == TagCgBI
}
