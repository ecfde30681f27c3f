package cgbipng

import (
	"encoding/binary"
	"fmt"
)

// chunkReader walks chunks sequentially over an in-memory buffer. The cursor
// only ever advances; lookahead is done with peekTag rather than seeking
// back.
type chunkReader struct {
	buf []byte
	pos int
}

func (r *chunkReader) remaining() int {
	return len(r.buf) - r.pos
}

// peekTag returns the type tag of the chunk at the cursor without advancing.
// ok is false when fewer than a full chunk header remains.
func (r *chunkReader) peekTag() (Tag, bool) {
	if r.remaining() < 8 {
		return Tag{}, false
	}
	var tag Tag
	copy(tag[:], r.buf[r.pos+4:r.pos+8])
	return tag, true
}

// next reads one complete chunk: 4-byte big-endian length, 4-byte tag,
// length data bytes, 4-byte big-endian CRC. Data aliases the input buffer;
// callers must not mutate it.
func (r *chunkReader) next() (Chunk, error) {
	if r.remaining() < 8 {
		return Chunk{}, fmt.Errorf("%w: %d bytes left, chunk header needs 8", ErrTruncatedChunk, r.remaining())
	}
	length := int(binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4]))
	var tag Tag
	copy(tag[:], r.buf[r.pos+4:r.pos+8])
	r.pos += 8

	if r.remaining() < length+4 {
		return Chunk{}, fmt.Errorf("%w: %s declares %d data bytes, %d left",
			ErrTruncatedChunk, tag, length, r.remaining())
	}
	data := r.buf[r.pos : r.pos+length]
	r.pos += length
	crc := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4

	return Chunk{Tag: tag, Data: data, CRC: crc}, nil
}
