// Package spec carries the immutable scheme parameters for the signature
// scheme: the message-hash truncation length, the coordinate resolution,
// the per-signer parameter length, and the target coordinate sum every
// accepted codeword must hit.
package spec

import "fmt"

// Spec is an immutable instantiation of the signature scheme.
type Spec struct {
	// MessageHashLen is the number of bytes of the tweaked message hash
	// retained as coordinate material.
	MessageHashLen int
	// CoordinateResolutionBits is w: bits per coordinate. Must divide 8
	// and be a power of two (1, 2, 4, or 8).
	CoordinateResolutionBits int
	// ParamLen is the byte length of the per-signer domain parameter.
	ParamLen int
	// TargetSum is the fixed sum every accepted codeword's coordinates
	// must equal.
	TargetSum int
}

// Dimension returns d, the number of hash chains / codeword coordinates.
func (s Spec) Dimension() int {
	return s.MessageHashLen * 8 / s.CoordinateResolutionBits
}

// ChainLen returns L, the length of each hash chain (2^w).
func (s Spec) ChainLen() int {
	return 1 << s.CoordinateResolutionBits
}

// MaxSum returns the largest achievable coordinate sum, d*(L-1).
func (s Spec) MaxSum() int {
	return s.Dimension() * (s.ChainLen() - 1)
}

// Validate panics if the parameters are internally inconsistent. This is a
// programmer error, never a runtime condition recoverable by a caller.
func (s Spec) Validate() {
	w := s.CoordinateResolutionBits
	if w != 1 && w != 2 && w != 4 && w != 8 {
		panic(fmt.Sprintf("spec: coordinate_resolution_bits must be 1, 2, 4, or 8, got %d", w))
	}
	if s.MessageHashLen <= 0 {
		panic("spec: message_hash_len must be positive")
	}
	if (s.MessageHashLen*8)%w != 0 {
		panic("spec: message_hash_len*8 must be a multiple of coordinate_resolution_bits")
	}
	if s.ParamLen <= 0 {
		panic("spec: param_len must be positive")
	}
	if s.TargetSum < 0 || s.TargetSum > s.MaxSum() {
		panic(fmt.Sprintf("spec: target_sum %d out of range [0, %d]", s.TargetSum, s.MaxSum()))
	}
}

// SPEC_1 is a normative test instantiation: dimension 72, chain length 4,
// maximum sum 216.
var SPEC_1 = Spec{
	MessageHashLen:           18,
	CoordinateResolutionBits: 2,
	ParamLen:                 18,
	TargetSum:                119,
}

// SPEC_2 is a normative test instantiation: dimension 36, chain length 16,
// maximum sum 540.
var SPEC_2 = Spec{
	MessageHashLen:           18,
	CoordinateResolutionBits: 4,
	ParamLen:                 18,
	TargetSum:                297,
}
