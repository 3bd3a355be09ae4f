package codeword

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IrreducibleOSS/leansig/hash"
	"github.com/IrreducibleOSS/leansig/internal/bitutil"
	"github.com/IrreducibleOSS/leansig/spec"
	"github.com/IrreducibleOSS/leansig/wire"
)

func TestBytesToCoordinatesW2(t *testing.T) {
	coords, err := bitutil.BytesToChunks([]byte{0b01101100}, 2)
	require.NoError(t, err)
	require.Equal(t, []uint8{0b00, 0b11, 0b10, 0b01}, coords)
}

func TestBytesToCoordinatesW8(t *testing.T) {
	coords, err := bitutil.BytesToChunks([]byte{0b01101100, 0b10100110}, 8)
	require.NoError(t, err)
	require.Equal(t, []uint8{0b01101100, 0b10100110}, coords)
}

func TestBytesToCoordinatesW1(t *testing.T) {
	coords, err := bitutil.BytesToChunks([]byte{0b00000011}, 1)
	require.NoError(t, err)
	require.Equal(t, []uint8{1, 1, 0, 0, 0, 0, 0, 0}, coords)
}

func TestGrindMaxRetriesZeroAlwaysFails(t *testing.T) {
	h := hash.NewKeccak256()
	param := hash.Param(bytes.Repeat([]byte{0x01}, spec.SPEC_2.ParamLen))
	var message hash.Message
	_, _, ok := Grind(spec.SPEC_2, h, 0, param, message, bytes.NewReader(nil))
	require.False(t, ok)
}

func TestGrindFindsValidCodeword(t *testing.T) {
	h := hash.NewKeccak256()
	param := hash.Param(bytes.Repeat([]byte{0x02}, spec.SPEC_2.ParamLen))
	var message hash.Message
	for i := range message {
		message[i] = byte(i)
	}

	src := newCountingSource()
	cw, _, ok := Grind(spec.SPEC_2, h, 1_000_000, param, message, src)
	require.True(t, ok)
	require.Equal(t, spec.SPEC_2.TargetSum, cw.Sum())
	require.Equal(t, spec.SPEC_2.Dimension(), cw.Dimension())
	for _, c := range cw.Coords() {
		require.Less(t, int(c), spec.SPEC_2.ChainLen())
	}
}

func TestCodewordWireRoundTrip(t *testing.T) {
	h := hash.NewKeccak256()
	param := hash.Param(bytes.Repeat([]byte{0x03}, spec.SPEC_1.ParamLen))
	var message hash.Message
	var n hash.Nonce
	cw := New(spec.SPEC_1, h, param, message, n)

	e := wire.NewEncoder()
	cw.EncodeTo(e)
	decoded, err := Decode(wire.NewDecoder(e.Bytes()))
	require.NoError(t, err)
	require.Equal(t, cw.Coords(), decoded.Coords())
}

// countingSource is a deterministic byte source for grinding tests: it
// produces a reproducible nonce stream without depending on the DRBG
// package. The byte stream repeats every 256 bytes, so it yields at most
// 256 distinct nonces (kept dependency-free to isolate this test from changes
// there).
type countingSource struct {
	counter uint64
}

func newCountingSource() *countingSource { return &countingSource{} }

func (s *countingSource) Read(p []byte) (int, error) {
	for i := range p {
		s.counter++
		p[i] = byte(s.counter)
	}
	return len(p), nil
}
