package cgbipng

import (
	"bytes"
	"encoding/binary"
)

// Result is the outcome of one conversion. Data is always a complete PNG:
// the rebuilt file when the input was crushed, the input bytes unchanged
// otherwise.
type Result struct {
	Data    []byte
	Width   int
	Height  int
	Crushed bool
}

// Convert transcodes a CgBI PNG into a standard PNG. Inputs without the
// CgBI marker pass through unchanged. The input buffer is never mutated;
// either a complete output is returned or no output at all.
func Convert(input []byte) (*Result, error) {
	if !HasSignature(input) {
		return nil, ErrNotPNG
	}
	r := chunkReader{buf: input, pos: len(pngSignature)}

	tag, ok := r.peekTag()
	if !ok {
		return nil, ErrTruncatedChunk
	}
	if tag != TagCgBI {
		return passThrough(input, &r)
	}
	return rebuild(input, &r)
}

// passThrough handles standard PNGs: output equals input, dimensions are
// still recovered from the leading IHDR.
func passThrough(input []byte, r *chunkReader) (*Result, error) {
	res := &Result{Data: input}
	first, err := r.next()
	if err != nil {
		return nil, err
	}
	if first.Tag == TagIHDR && len(first.Data) == ihdrLength {
		res.Width = int(binary.BigEndian.Uint32(first.Data[0:4]))
		res.Height = int(binary.BigEndian.Uint32(first.Data[4:8]))
	}
	return res, nil
}

// rebuild walks the crushed file chunk by chunk and writes the normalized
// stream. The CgBI marker is dropped, IHDR is inspected and passed through
// byte-identical, consecutive IDAT payloads are coalesced into one
// transformed IDAT, everything else is copied verbatim. The walk stops at
// IEND; trailing garbage is not copied.
func rebuild(input []byte, r *chunkReader) (*Result, error) {
	out := bytes.Buffer{}
	out.Grow(len(input))
	out.Write(pngSignature)

	var (
		info     imageInfo
		seenIHDR bool
		idat     bytes.Buffer
	)

	// The raw DEFLATE stream of a crushed file may span several IDAT
	// chunks; it only decompresses as a whole.
	flushIDAT := func() error {
		if idat.Len() == 0 {
			return nil
		}
		if !seenIHDR {
			return ErrChunkOrder
		}
		data, err := restoreImageData(idat.Bytes(), info)
		if err != nil {
			return err
		}
		c := Chunk{Tag: TagIDAT}
		c.SetData(data)
		c.writeTo(&out)
		idat.Reset()
		return nil
	}

	for r.remaining() > 0 {
		c, err := r.next()
		if err != nil {
			return nil, err
		}

		switch c.Tag {
		case TagCgBI:
			// Dropped from the output entirely.
		case TagIHDR:
			info, err = parseIHDR(c.Data)
			if err != nil {
				return nil, err
			}
			seenIHDR = true
			c.writeTo(&out)
		case TagIDAT:
			idat.Write(c.Data)
		default:
			if err := flushIDAT(); err != nil {
				return nil, err
			}
			c.writeTo(&out)
		}

		if c.Tag == TagIEND {
			break
		}
	}
	if err := flushIDAT(); err != nil {
		return nil, err
	}

	return &Result{
		Data:    out.Bytes(),
		Width:   info.width,
		Height:  info.height,
		Crushed: true,
	}, nil
}
