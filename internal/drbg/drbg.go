// Package drbg provides the deterministic byte source the signature scheme
// is parameterized over (§6 "Pseudo-randomness source"). The core never
// inspects the source beyond io.Reader: fill the per-signer parameter, fill
// 32-byte start hashes, and fill a 23-byte nonce per grind attempt. Anyone
// supplying the same seed-to-byte-stream function produces identical keys
// and signatures, which is what makes the end-to-end test vectors in §8
// reproducible across implementations.
package drbg

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/sha3"
)

// seedDomainSep separates this expansion from any other use of SHAKE256
// within the process; it has no cryptographic significance beyond that.
var seedDomainSep = []byte{0x6c, 0x65, 0x61, 0x6e, 0x73, 0x69, 0x67, 0x00}

// NewCryptoSource returns the production byte source, backed by the
// operating system's CSPRNG.
func NewCryptoSource() io.Reader {
	return rand.Reader
}

// NewSeeded returns a deterministic, reproducible byte source expanded from
// seed via SHAKE256. It exists for tests and benchmarks that need the same
// signer (same parameter, same keys, same signatures) across runs — the Go
// analogue of seeding a fixed-seed PRNG before key generation.
func NewSeeded(seed uint64) io.Reader {
	shake := sha3.NewShake256()
	shake.Write(seedDomainSep)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	shake.Write(b[:])
	return shake
}
