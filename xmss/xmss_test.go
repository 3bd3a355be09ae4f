package xmss

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IrreducibleOSS/leansig/hash"
	"github.com/IrreducibleOSS/leansig/internal/drbg"
	"github.com/IrreducibleOSS/leansig/spec"
	"github.com/IrreducibleOSS/leansig/wire"
)

func fixedMessage(b byte) (m hash.Message) {
	for i := range m {
		m[i] = b
	}
	return m
}

// Scenario 1: seed 0, lifetime 8, sign two distinct epochs, cross-verify fails.
func TestEndToEndSignAndCrossVerify(t *testing.T) {
	sp := spec.SPEC_2
	signer := NewSigner(drbg.NewSeeded(0), 1_000_000, sp, 8)

	msg0 := fixedMessage(10)
	msg3 := fixedMessage(20)

	sig0, ok := signer.Sign(0, msg0)
	require.True(t, ok)
	sig3, ok := signer.Sign(3, msg3)
	require.True(t, ok)

	require.True(t, VerifySignature(sp, signer.Param, msg0, sig0, signer.Root))
	require.True(t, VerifySignature(sp, signer.Param, msg3, sig3, signer.Root))

	// cross-verification: msg0 against the epoch-3 signature fails.
	require.False(t, VerifySignature(sp, signer.Param, msg0, sig3, signer.Root))
}

// Scenario 2: signing a third message and verifying against a different
// message than was signed fails.
func TestWrongMessageFails(t *testing.T) {
	sp := spec.SPEC_2
	signer := NewSigner(drbg.NewSeeded(0), 1_000_000, sp, 8)

	msg30 := fixedMessage(30)
	msg10 := fixedMessage(10)

	sig, ok := signer.Sign(0, msg30)
	require.True(t, ok)
	require.False(t, VerifySignature(sp, signer.Param, msg10, sig, signer.Root))
}

// Scenarios 3 & 4: three independent signers (seeds 1,2,3), lifetime 4, all
// sign the same message at epoch 0; the full aggregate and a strict subset
// both verify.
func TestAggregateThreeValidatorsAndSubset(t *testing.T) {
	sp := spec.SPEC_2
	msg := fixedMessage(42)

	var signers [3]*Signer
	var validator [3]ValidatorSignature
	for i, seed := range []uint64{1, 2, 3} {
		s := NewSigner(drbg.NewSeeded(seed), 1_000_000, sp, 4)
		signers[i] = s
		sig, ok := s.Sign(0, msg)
		require.True(t, ok)
		validator[i] = ValidatorSignature{Epoch: 0, Signature: *sig, Root: s.Root, Param: s.Param}
	}

	roots := []hash.Hash{signers[0].Root, signers[1].Root, signers[2].Root}
	verifier := NewAggregatedVerifier(sp, roots)

	full := &AggregatedSignature{Signatures: validator[:]}
	require.True(t, verifier.Verify(msg, full))

	subset := &AggregatedSignature{Signatures: validator[:2]}
	require.True(t, verifier.Verify(msg, subset))
}

// Scenario 5: a single-entry aggregate signed for one message but verified
// against a different one fails.
func TestAggregateWrongMessageFails(t *testing.T) {
	sp := spec.SPEC_2
	signer := NewSigner(drbg.NewSeeded(7), 1_000_000, sp, 4)

	signed := fixedMessage(99)
	checked := fixedMessage(42)

	sig, ok := signer.Sign(0, signed)
	require.True(t, ok)

	vs := ValidatorSignature{Epoch: 0, Signature: *sig, Root: signer.Root, Param: signer.Param}
	verifier := NewAggregatedVerifier(sp, []hash.Hash{signer.Root})

	agg := &AggregatedSignature{Signatures: []ValidatorSignature{vs}}
	require.False(t, verifier.Verify(checked, agg))
}

// Empty aggregate is vacuously accepted; a non-empty aggregate against an
// empty root set is rejected.
func TestAggregateEmptyAndEmptyRootSet(t *testing.T) {
	sp := spec.SPEC_2
	msg := fixedMessage(1)

	verifier := NewAggregatedVerifier(sp, nil)
	require.True(t, verifier.Verify(msg, &AggregatedSignature{}))

	signer := NewSigner(drbg.NewSeeded(9), 1_000_000, sp, 4)
	sig, ok := signer.Sign(0, msg)
	require.True(t, ok)
	vs := ValidatorSignature{Epoch: 0, Signature: *sig, Root: signer.Root, Param: signer.Param}
	require.False(t, verifier.Verify(msg, &AggregatedSignature{Signatures: []ValidatorSignature{vs}}))
}

// Scenario 6: SPEC_1, lifetime 256, seed 0, sign the zero message at the
// final epoch; verifies under its own root and no other seed's root.
func TestEndToEndLargeLifetimeFinalEpoch(t *testing.T) {
	sp := spec.SPEC_1
	signer := NewSigner(drbg.NewSeeded(0), 1_000_000, sp, 256)
	other := NewSigner(drbg.NewSeeded(1), 1_000_000, sp, 256)

	msg := fixedMessage(0)
	sig, ok := signer.Sign(255, msg)
	require.True(t, ok)

	require.True(t, VerifySignature(sp, signer.Param, msg, sig, signer.Root))
	require.False(t, VerifySignature(sp, other.Param, msg, sig, other.Root))
}

func TestSignPanicsOnOutOfRangeEpoch(t *testing.T) {
	sp := spec.SPEC_2
	signer := NewSigner(drbg.NewSeeded(0), 1_000_000, sp, 4)
	require.Panics(t, func() {
		signer.Sign(4, fixedMessage(1))
	})
}

func TestPartialActivationSignsOnlyWithinWindow(t *testing.T) {
	sp := spec.SPEC_2
	signer := NewSignerWithActivation(drbg.NewSeeded(3), 1_000_000, sp, 8, 2, 3)

	msg := fixedMessage(5)
	sig, ok := signer.Sign(2, msg)
	require.True(t, ok)
	require.True(t, VerifySignature(sp, signer.Param, msg, sig, signer.Root))

	_, ok = signer.Sign(0, msg)
	require.False(t, ok)
	_, ok = signer.Sign(5, msg)
	require.False(t, ok)
}

func TestGrindExhaustionSurfacesSigningError(t *testing.T) {
	sp := spec.SPEC_2
	signer := NewSigner(drbg.NewSeeded(0), 0, sp, 4)
	_, err := signer.SignErr(0, fixedMessage(1))
	require.Error(t, err)
	var signingErr *SigningError
	require.ErrorAs(t, err, &signingErr)
	require.Equal(t, 0, signingErr.Attempts)
}

func TestSeededSignerIsReproducible(t *testing.T) {
	sp := spec.SPEC_2
	a := NewSigner(drbg.NewSeeded(42), 1_000_000, sp, 4)
	b := NewSigner(drbg.NewSeeded(42), 1_000_000, sp, 4)
	require.Equal(t, a.Root, b.Root)
	require.Equal(t, a.Param, b.Param)
}

func TestPkWireRoundTrip(t *testing.T) {
	sp := spec.SPEC_2
	signer := NewSigner(drbg.NewSeeded(1), 1_000_000, sp, 4)
	sig, ok := signer.Sign(0, fixedMessage(1))
	require.True(t, ok)

	e := wire.NewEncoder()
	sig.PublicKey.EncodeTo(e)
	decoded, err := DecodePk(wire.NewDecoder(e.Bytes()))
	require.NoError(t, err)
	require.Equal(t, sig.PublicKey, decoded)
}

func TestOtsSignatureWireRoundTrip(t *testing.T) {
	sp := spec.SPEC_2
	signer := NewSigner(drbg.NewSeeded(2), 1_000_000, sp, 4)
	sig, ok := signer.Sign(0, fixedMessage(2))
	require.True(t, ok)

	e := wire.NewEncoder()
	sig.Ots.EncodeTo(e)
	decoded, err := DecodeOtsSignature(wire.NewDecoder(e.Bytes()))
	require.NoError(t, err)
	require.Equal(t, sig.Ots, decoded)
}

func TestSignatureWireRoundTrip(t *testing.T) {
	sp := spec.SPEC_2
	signer := NewSigner(drbg.NewSeeded(3), 1_000_000, sp, 4)
	msg := fixedMessage(3)
	sig, ok := signer.Sign(0, msg)
	require.True(t, ok)

	e := wire.NewEncoder()
	sig.EncodeTo(e)
	decoded, err := DecodeSignature(wire.NewDecoder(e.Bytes()))
	require.NoError(t, err)
	require.Equal(t, *sig, decoded)
	require.True(t, VerifySignature(sp, signer.Param, msg, &decoded, signer.Root))
}

func TestValidatorSignatureWireRoundTrip(t *testing.T) {
	sp := spec.SPEC_2
	signer := NewSigner(drbg.NewSeeded(4), 1_000_000, sp, 4)
	msg := fixedMessage(4)
	sig, ok := signer.Sign(0, msg)
	require.True(t, ok)
	vs := ValidatorSignature{Epoch: 0, Signature: *sig, Root: signer.Root, Param: signer.Param}

	e := wire.NewEncoder()
	vs.EncodeTo(e)
	decoded, err := DecodeValidatorSignature(wire.NewDecoder(e.Bytes()))
	require.NoError(t, err)
	require.Equal(t, vs, decoded)
}

func TestAggregatedSignatureWireRoundTrip(t *testing.T) {
	sp := spec.SPEC_2
	msg := fixedMessage(5)

	var validator []ValidatorSignature
	for _, seed := range []uint64{11, 12, 13} {
		s := NewSigner(drbg.NewSeeded(seed), 1_000_000, sp, 4)
		sig, ok := s.Sign(0, msg)
		require.True(t, ok)
		validator = append(validator, ValidatorSignature{Epoch: 0, Signature: *sig, Root: s.Root, Param: s.Param})
	}
	agg := AggregatedSignature{Signatures: validator}

	e := wire.NewEncoder()
	agg.EncodeTo(e)
	decoded, err := DecodeAggregatedSignature(wire.NewDecoder(e.Bytes()))
	require.NoError(t, err)
	require.Equal(t, agg, decoded)

	roots := make([]hash.Hash, len(validator))
	for i, vs := range validator {
		roots[i] = vs.Root
	}
	verifier := NewAggregatedVerifier(sp, roots)
	require.True(t, verifier.Verify(msg, &decoded))
}
