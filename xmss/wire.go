package xmss

import (
	"fmt"

	"github.com/IrreducibleOSS/leansig/hash"
	"github.com/IrreducibleOSS/leansig/merkle"
	"github.com/IrreducibleOSS/leansig/wire"
)

// EncodeTo appends the length-prefixed param followed by the end hashes,
// count-prefixed.
func (pk Pk) EncodeTo(e *wire.Encoder) {
	pk.Param.EncodeTo(e)
	e.PutUint32(uint32(len(pk.EndHashes)))
	for _, h := range pk.EndHashes {
		h.EncodeTo(e)
	}
}

// DecodePk reads a Pk written by EncodeTo.
func DecodePk(d *wire.Decoder) (Pk, error) {
	param, err := hash.DecodeParam(d)
	if err != nil {
		return Pk{}, fmt.Errorf("xmss: decode pk param: %w", err)
	}
	n, err := d.Uint32()
	if err != nil {
		return Pk{}, fmt.Errorf("xmss: decode pk count: %w", err)
	}
	end := make([]hash.Hash, n)
	for i := range end {
		h, err := hash.DecodeHash(d)
		if err != nil {
			return Pk{}, fmt.Errorf("xmss: decode pk end_hashes[%d]: %w", i, err)
		}
		end[i] = h
	}
	return Pk{Param: param, EndHashes: end}, nil
}

// EncodeTo appends the nonce followed by the count-prefixed intermediate
// hashes.
func (o OtsSignature) EncodeTo(e *wire.Encoder) {
	o.Nonce.EncodeTo(e)
	e.PutUint32(uint32(len(o.IntermediateHashes)))
	for _, h := range o.IntermediateHashes {
		h.EncodeTo(e)
	}
}

// DecodeOtsSignature reads an OtsSignature written by EncodeTo.
func DecodeOtsSignature(d *wire.Decoder) (OtsSignature, error) {
	nonce, err := hash.DecodeNonce(d)
	if err != nil {
		return OtsSignature{}, fmt.Errorf("xmss: decode ots nonce: %w", err)
	}
	n, err := d.Uint32()
	if err != nil {
		return OtsSignature{}, fmt.Errorf("xmss: decode ots count: %w", err)
	}
	intermediate := make([]hash.Hash, n)
	for i := range intermediate {
		h, err := hash.DecodeHash(d)
		if err != nil {
			return OtsSignature{}, fmt.Errorf("xmss: decode ots intermediate_hashes[%d]: %w", i, err)
		}
		intermediate[i] = h
	}
	return OtsSignature{Nonce: nonce, IntermediateHashes: intermediate}, nil
}

// EncodeTo appends the OTS signature, the Merkle proof, and the public key
// in that order.
func (s Signature) EncodeTo(e *wire.Encoder) {
	s.Ots.EncodeTo(e)
	s.MerkleProof.EncodeTo(e)
	s.PublicKey.EncodeTo(e)
}

// DecodeSignature reads a Signature written by EncodeTo.
func DecodeSignature(d *wire.Decoder) (Signature, error) {
	ots, err := DecodeOtsSignature(d)
	if err != nil {
		return Signature{}, err
	}
	proof, err := merkle.DecodeProof(d)
	if err != nil {
		return Signature{}, fmt.Errorf("xmss: decode signature merkle proof: %w", err)
	}
	pk, err := DecodePk(d)
	if err != nil {
		return Signature{}, fmt.Errorf("xmss: decode signature pk: %w", err)
	}
	return Signature{Ots: ots, MerkleProof: proof, PublicKey: pk}, nil
}

// EncodeTo appends the epoch, the signature, the root, and the param.
func (vs ValidatorSignature) EncodeTo(e *wire.Encoder) {
	e.PutUint32(uint32(vs.Epoch))
	vs.Signature.EncodeTo(e)
	vs.Root.EncodeTo(e)
	vs.Param.EncodeTo(e)
}

// DecodeValidatorSignature reads a ValidatorSignature written by EncodeTo.
func DecodeValidatorSignature(d *wire.Decoder) (ValidatorSignature, error) {
	epoch, err := d.Uint32()
	if err != nil {
		return ValidatorSignature{}, fmt.Errorf("xmss: decode validator epoch: %w", err)
	}
	sig, err := DecodeSignature(d)
	if err != nil {
		return ValidatorSignature{}, err
	}
	root, err := hash.DecodeHash(d)
	if err != nil {
		return ValidatorSignature{}, fmt.Errorf("xmss: decode validator root: %w", err)
	}
	param, err := hash.DecodeParam(d)
	if err != nil {
		return ValidatorSignature{}, fmt.Errorf("xmss: decode validator param: %w", err)
	}
	return ValidatorSignature{Epoch: int(epoch), Signature: sig, Root: root, Param: param}, nil
}

// EncodeTo appends the count-prefixed sequence of validator signatures —
// naive concatenation, growing linearly with the number of validators.
func (a AggregatedSignature) EncodeTo(e *wire.Encoder) {
	e.PutUint32(uint32(len(a.Signatures)))
	for _, vs := range a.Signatures {
		vs.EncodeTo(e)
	}
}

// DecodeAggregatedSignature reads an AggregatedSignature written by EncodeTo.
func DecodeAggregatedSignature(d *wire.Decoder) (AggregatedSignature, error) {
	n, err := d.Uint32()
	if err != nil {
		return AggregatedSignature{}, fmt.Errorf("xmss: decode aggregate count: %w", err)
	}
	sigs := make([]ValidatorSignature, n)
	for i := range sigs {
		vs, err := DecodeValidatorSignature(d)
		if err != nil {
			return AggregatedSignature{}, fmt.Errorf("xmss: decode aggregate[%d]: %w", i, err)
		}
		sigs[i] = vs
	}
	return AggregatedSignature{Signatures: sigs}, nil
}
