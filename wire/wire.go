// Package wire implements the deterministic byte encoding used to transport
// witness values across a process boundary (for example, into a zero-
// knowledge VM guest). Fixed-width integers are little-endian; variable-
// length byte sequences are length-prefixed with a little-endian uint32.
//
// This is a hand-rolled framing, not a generic serializer: the byte layout
// is itself part of the contract with whatever reads it on the other side,
// so encoding/gob, encoding/json, or a reflection-based codec would risk
// silently drifting from that contract across Go versions.
package wire

import (
	"encoding/binary"
	"fmt"
)

// Encoder appends values to an in-memory byte buffer.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// PutUint32 appends a little-endian uint32.
func (e *Encoder) PutUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// PutUint64 appends a little-endian uint64.
func (e *Encoder) PutUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// PutFixed appends raw bytes with no length prefix, for fields whose length
// is implied by the schema (for example a 32-byte hash).
func (e *Encoder) PutFixed(b []byte) {
	e.buf = append(e.buf, b...)
}

// PutBytes appends a 4-byte little-endian length prefix followed by b.
func (e *Encoder) PutBytes(b []byte) {
	e.PutUint32(uint32(len(b)))
	e.buf = append(e.buf, b...)
}

// Decoder reads values back out of a byte buffer produced by Encoder.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder wraps a buffer for sequential reads.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Uint32 reads a little-endian uint32.
func (d *Decoder) Uint32() (uint32, error) {
	if d.Remaining() < 4 {
		return 0, fmt.Errorf("wire: short buffer reading uint32: %d bytes left", d.Remaining())
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

// Uint64 reads a little-endian uint64.
func (d *Decoder) Uint64() (uint64, error) {
	if d.Remaining() < 8 {
		return 0, fmt.Errorf("wire: short buffer reading uint64: %d bytes left", d.Remaining())
	}
	v := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

// Fixed reads exactly n raw bytes.
func (d *Decoder) Fixed(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, fmt.Errorf("wire: short buffer reading %d fixed bytes: %d left", n, d.Remaining())
	}
	out := append([]byte(nil), d.buf[d.pos:d.pos+n]...)
	d.pos += n
	return out, nil
}

// Bytes reads a length-prefixed byte sequence.
func (d *Decoder) Bytes() ([]byte, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	return d.Fixed(int(n))
}
