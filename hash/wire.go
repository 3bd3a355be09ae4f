package hash

import (
	"fmt"

	"github.com/IrreducibleOSS/leansig/wire"
)

// EncodeTo appends the length-prefixed parameter bytes.
func (p Param) EncodeTo(e *wire.Encoder) {
	e.PutBytes(p)
}

// DecodeParam reads a length-prefixed parameter.
func DecodeParam(d *wire.Decoder) (Param, error) {
	b, err := d.Bytes()
	if err != nil {
		return nil, fmt.Errorf("hash: decode param: %w", err)
	}
	return Param(b), nil
}

// EncodeTo appends the fixed 32-byte hash value.
func (h Hash) EncodeTo(e *wire.Encoder) {
	e.PutFixed(h[:])
}

// DecodeHash reads a fixed 32-byte hash value.
func DecodeHash(d *wire.Decoder) (Hash, error) {
	var out Hash
	b, err := d.Fixed(32)
	if err != nil {
		return out, fmt.Errorf("hash: decode hash: %w", err)
	}
	copy(out[:], b)
	return out, nil
}

// EncodeTo appends the fixed 23-byte nonce.
func (n Nonce) EncodeTo(e *wire.Encoder) {
	e.PutFixed(n[:])
}

// DecodeNonce reads a fixed 23-byte nonce.
func DecodeNonce(d *wire.Decoder) (Nonce, error) {
	var out Nonce
	b, err := d.Fixed(RandLen)
	if err != nil {
		return out, fmt.Errorf("hash: decode nonce: %w", err)
	}
	copy(out[:], b)
	return out, nil
}

// EncodeTo appends the fixed 32-byte message.
func (m Message) EncodeTo(e *wire.Encoder) {
	e.PutFixed(m[:])
}

// DecodeMessage reads a fixed 32-byte message.
func DecodeMessage(d *wire.Decoder) (Message, error) {
	var out Message
	b, err := d.Fixed(MessageLen)
	if err != nil {
		return out, fmt.Errorf("hash: decode message: %w", err)
	}
	copy(out[:], b)
	return out, nil
}
