// Package codeword implements the deterministic mapping from a (parameter,
// message, nonce) triple to a vector of small integers — the codeword —
// and the rejection-sampling "grinding" search for a nonce whose codeword
// sum hits a fixed target.
package codeword

import (
	"io"

	"github.com/IrreducibleOSS/leansig/hash"
	"github.com/IrreducibleOSS/leansig/internal/bitutil"
	"github.com/IrreducibleOSS/leansig/spec"
	"github.com/IrreducibleOSS/leansig/wire"
)

// Codeword is a coordinate vector of length d, each coordinate in [0, L).
type Codeword struct {
	coords []uint8
}

// New computes the codeword for (param, message, nonce) under sp. It does
// not check the sum against sp.TargetSum; use NewValid for that.
func New(sp spec.Spec, h hash.Hasher, param hash.Param, message hash.Message, nonce hash.Nonce) Codeword {
	full := hash.HashMessage(h, param, message, nonce)
	truncated := full[:sp.MessageHashLen]
	coords, err := bitutil.BytesToChunks(truncated, sp.CoordinateResolutionBits)
	if err != nil {
		panic("codeword: " + err.Error())
	}
	if len(coords) != sp.Dimension() {
		panic("codeword: dimension mismatch between spec and derived coordinates")
	}
	return Codeword{coords: coords}
}

// NewValid computes the codeword and reports whether its sum equals
// sp.TargetSum.
func NewValid(sp spec.Spec, h hash.Hasher, param hash.Param, message hash.Message, nonce hash.Nonce) (Codeword, bool) {
	cw := New(sp, h, param, message, nonce)
	return cw, cw.Sum() == sp.TargetSum
}

// Sum returns the sum over all coordinates.
func (c Codeword) Sum() int {
	sum := 0
	for _, v := range c.coords {
		sum += int(v)
	}
	return sum
}

// Dimension returns d, the number of coordinates.
func (c Codeword) Dimension() int {
	return len(c.coords)
}

// Coords returns the coordinate vector.
func (c Codeword) Coords() []uint8 {
	return c.coords
}

// Grind repeatedly samples a fresh nonce from src and computes the
// codeword until either a valid codeword is found, or maxRetries attempts
// are exhausted. No state is retained between attempts.
func Grind(sp spec.Spec, h hash.Hasher, maxRetries int, param hash.Param, message hash.Message, src io.Reader) (Codeword, hash.Nonce, bool) {
	for i := 0; i < maxRetries; i++ {
		var nonce hash.Nonce
		if _, err := io.ReadFull(src, nonce[:]); err != nil {
			panic("codeword: failed to read nonce from randomness source: " + err.Error())
		}
		if cw, ok := NewValid(sp, h, param, message, nonce); ok {
			return cw, nonce, true
		}
	}
	return Codeword{}, hash.Nonce{}, false
}

// EncodeTo appends the coordinate vector as a length-prefixed byte string.
func (c Codeword) EncodeTo(e *wire.Encoder) {
	e.PutBytes(c.coords)
}

// Decode reads a length-prefixed coordinate vector.
func Decode(d *wire.Decoder) (Codeword, error) {
	b, err := d.Bytes()
	if err != nil {
		return Codeword{}, err
	}
	return Codeword{coords: b}, nil
}
