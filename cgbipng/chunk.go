package cgbipng

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// Tag is a 4-byte ASCII PNG chunk type. Using a fixed-size array keeps
// dispatch allocation-free and comparable with ==.
type Tag [4]byte

// Chunk types the engine treats specially. Anything else is passed through
// byte-identical.
var (
	TagCgBI = Tag{'C', 'g', 'B', 'I'}
	TagIHDR = Tag{'I', 'H', 'D', 'R'}
	TagIDAT = Tag{'I', 'D', 'A', 'T'}
	TagIEND = Tag{'I', 'E', 'N', 'D'}
)

func (t Tag) String() string {
	return string(t[:])
}

// Chunk is one length-prefixed, typed, CRC-protected PNG record. CRC covers
// tag and data, never the length field.
type Chunk struct {
	Tag  Tag
	Data []byte
	CRC  uint32
}

// SetData replaces the chunk payload and recomputes the CRC. The CRC is
// always derived from the full new payload, never carried over.
func (c *Chunk) SetData(data []byte) {
	c.Data = data
	crc := crc32.NewIEEE()
	crc.Write(c.Tag[:])
	crc.Write(c.Data)
	c.CRC = crc.Sum32()
}

// writeTo appends the chunk in standard big-endian PNG framing:
// length(4) | tag(4) | data | crc(4).
func (c *Chunk) writeTo(out *bytes.Buffer) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(c.Data)))
	out.Write(tmp[:])
	out.Write(c.Tag[:])
	out.Write(c.Data)
	binary.BigEndian.PutUint32(tmp[:], c.CRC)
	out.Write(tmp[:])
}
