package merkle

import (
	"fmt"

	"github.com/IrreducibleOSS/leansig/hash"
	"github.com/IrreducibleOSS/leansig/wire"
)

// EncodeTo appends the leaf index and the ordered sibling path.
func (p Proof) EncodeTo(e *wire.Encoder) {
	e.PutUint32(uint32(p.LeafIndex))
	e.PutUint32(uint32(len(p.Path)))
	for _, sib := range p.Path {
		sib.EncodeTo(e)
	}
}

// DecodeProof reads a Proof written by EncodeTo.
func DecodeProof(d *wire.Decoder) (Proof, error) {
	leafIndex, err := d.Uint32()
	if err != nil {
		return Proof{}, fmt.Errorf("merkle: decode leaf index: %w", err)
	}
	n, err := d.Uint32()
	if err != nil {
		return Proof{}, fmt.Errorf("merkle: decode path length: %w", err)
	}
	path := make([]hash.Hash, n)
	for i := range path {
		h, err := hash.DecodeHash(d)
		if err != nil {
			return Proof{}, fmt.Errorf("merkle: decode path[%d]: %w", i, err)
		}
		path[i] = h
	}
	return Proof{LeafIndex: int(leafIndex), Path: path}, nil
}
