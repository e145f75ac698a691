package propstream

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader reads attribute records from a persisted property stream.
// Uses Little-Endian byte order for all multi-byte values.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new property stream reader.
func NewReader(data []byte) *Reader {
	return &Reader{
		data: data,
		pos:  0,
	}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("ReadByte: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadUint16 reads a uint16 (2 bytes, LE).
func (r *Reader) ReadUint16() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, fmt.Errorf("ReadUint16: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	val := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return val, nil
}

// ReadUint32 reads a uint32 (4 bytes, LE).
func (r *Reader) ReadUint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("ReadUint32: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	val := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return val, nil
}

// ReadInt32 reads an int32 (4 bytes, LE).
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, fmt.Errorf("ReadInt32: %w", err)
	}
	return int32(v), nil
}

// ReadFloat32 reads an IEEE 754 float32 (4 bytes, LE).
func (r *Reader) ReadFloat32() (float32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("ReadFloat32: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	bits := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return math.Float32frombits(bits), nil
}

// Skip advances the read position by n bytes without decoding them.
func (r *Reader) Skip(n int) error {
	if n < 0 {
		return fmt.Errorf("Skip: negative count %d", n)
	}
	if r.pos+n > len(r.data) {
		return fmt.Errorf("Skip: not enough data (pos=%d, need=%d, len=%d)", r.pos, n, len(r.data))
	}
	r.pos += n
	return nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Position returns the current read position.
func (r *Reader) Position() int {
	return r.pos
}
