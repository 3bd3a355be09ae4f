// Package hash implements the domain-separated tweaked hash constructions
// the signature scheme is built from: the message hash, the chain-step
// hash, the tree-node hash, and the public-key leaf hash. All four share
// the same underlying 256-bit permutation, distinguished only by a framing
// prefix byte and (for chain and tree) structural indices.
//
// Bit-exactness of every hash input is part of the contract: these byte
// layouts are normative, not an implementation detail, because a separate
// verifier re-executes them inside a zero-knowledge VM.
package hash

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// RandLen is the length in bytes of a signing nonce.
const RandLen = 23

// MessageLen is the length in bytes of a message to be signed.
const MessageLen = 32

// Domain separator prefixes, matching the reference construction.
const (
	tweakChain   byte = 0x00
	tweakTree    byte = 0x01
	tweakMessage byte = 0x02
)

// Param is a per-signer opaque domain-separator byte string.
type Param []byte

// Hash is a 256-bit hash output.
type Hash [32]byte

// Nonce is the per-signing-attempt randomness mixed into the message hash.
type Nonce [RandLen]byte

// Message is the fixed-length payload being signed.
type Message [MessageLen]byte

// Hasher computes the 256-bit permutation over the concatenation of its
// arguments. Implementations may swap the underlying permutation backend
// (software vs. a zkVM precompile) as long as this byte-level contract is
// preserved.
type Hasher interface {
	Sum(parts ...[]byte) Hash
}

// keccak256 is a Hasher backed by the original (pre-NIST-standardization)
// Keccak-256 permutation: 0x01 padding, not SHA3's 0x06. This is the
// permutation the scheme's hash inputs are normative against.
type keccak256 struct{}

// NewKeccak256 returns the default Hasher.
func NewKeccak256() Hasher {
	return keccak256{}
}

func (keccak256) Sum(parts ...[]byte) Hash {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// HashMessage computes H_msg(param, message, nonce) = H(param || 0x02 || nonce || message).
func HashMessage(h Hasher, param Param, message Message, nonce Nonce) Hash {
	return h.Sum(param, []byte{tweakMessage}, nonce[:], message[:])
}

// ChainStep computes H_chain(param, chainIndex, posInChain, prev) =
// H(param || 0x00 || prev || be_u64(chainIndex) || be_u64(posInChain)).
// posInChain is the 1-based output index: the position of the returned hash
// in the chain.
func ChainStep(h Hasher, param Param, chainIndex int, posInChain int, prev Hash) Hash {
	var idx, pos [8]byte
	binary.BigEndian.PutUint64(idx[:], uint64(chainIndex))
	binary.BigEndian.PutUint64(pos[:], uint64(posInChain))
	return h.Sum(param, []byte{tweakChain}, prev[:], idx[:], pos[:])
}

// Chain walks chain chainIndex for steps iterations starting at position
// startPos with value start. Position 0 denotes start. steps == 0 returns
// start unchanged.
func Chain(h Hasher, param Param, chainIndex int, start Hash, startPos int, steps int) Hash {
	current := start
	for j := 0; j < steps; j++ {
		current = ChainStep(h, param, chainIndex, startPos+j+1, current)
	}
	return current
}

// TreeNode computes H_tree(param, left, right, level, index) =
// H(param || 0x01 || be_u32(level) || be_u32(index) || left || right).
func TreeNode(h Hasher, param Param, left, right Hash, level uint32, index uint32) Hash {
	var lvl, idx [4]byte
	binary.BigEndian.PutUint32(lvl[:], level)
	binary.BigEndian.PutUint32(idx[:], index)
	return h.Sum(param, []byte{tweakTree}, lvl[:], idx[:], left[:], right[:])
}

// PublicKeyLeaf computes H_pk(param, endHashes) = H(param || 0x01 || endHashes[0] || endHashes[1] || ...),
// the leaf hash attached to an OTS public key. Unlike TreeNode, it carries
// no level or index: it is a distinct fourth construction sharing only the
// tree's framing byte.
func PublicKeyLeaf(h Hasher, param Param, endHashes []Hash) Hash {
	parts := make([][]byte, 0, 2+len(endHashes))
	parts = append(parts, param, []byte{tweakTree})
	for i := range endHashes {
		parts = append(parts, endHashes[i][:])
	}
	return h.Sum(parts...)
}
