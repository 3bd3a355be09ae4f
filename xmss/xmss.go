// Package xmss implements the epoch signer, the one-time key pairs it
// manages, and the per-signature verifier: a finite sequence of Winternitz-
// style one-time signature key pairs bound by a Merkle tree to a single
// root, signed and verified epoch by epoch.
package xmss

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/IrreducibleOSS/leansig/codeword"
	"github.com/IrreducibleOSS/leansig/hash"
	"github.com/IrreducibleOSS/leansig/merkle"
	"github.com/IrreducibleOSS/leansig/spec"
)

// Pk is a one-time public key: the chain-end hash for every chain of one
// epoch's key pair.
type Pk struct {
	Param     hash.Param
	EndHashes []hash.Hash
}

// Sk is a one-time secret key: the chain-start hash for every chain of one
// epoch's key pair. Must never be reused across messages.
type Sk struct {
	Param       hash.Param
	StartHashes []hash.Hash
}

// derivePk walks every chain in sk to its end to obtain the corresponding
// public key. Deterministic from sk and sp.
func derivePk(h hash.Hasher, sk Sk, sp spec.Spec) Pk {
	chainLen := sp.ChainLen()
	end := make([]hash.Hash, len(sk.StartHashes))
	for i, start := range sk.StartHashes {
		end[i] = hash.Chain(h, sk.Param, i, start, 0, chainLen-1)
	}
	return Pk{Param: sk.Param, EndHashes: end}
}

// OtsSignature is a one-time signature: the nonce that produced a valid
// codeword, and for each chain the intermediate hash at the codeword's
// coordinate position.
type OtsSignature struct {
	Nonce               hash.Nonce
	IntermediateHashes  []hash.Hash
}

// Signature is a full epoch signature: the one-time signature, the Merkle
// proof that the epoch's public key is bound to the signer's root, and the
// public key itself.
type Signature struct {
	Ots         OtsSignature
	MerkleProof merkle.Proof
	PublicKey   Pk
}

// EncodedLen returns the number of bytes Signature.EncodeTo would write for
// a signature produced under sp, without actually encoding it.
func (s *Signature) EncodedLen(sp spec.Spec) int {
	// nonce (fixed) + 4B count + dimension intermediate hashes (32B each)
	// + merkle proof (4B index + 4B count + 32B per path entry) + public key
	// (length-prefixed param + 4B count + dimension*32B).
	const hashLen = 32
	d := sp.Dimension()
	otsLen := hash.RandLen + 4 + d*hashLen
	pkLen := 4 + len(s.PublicKey.Param) + 4 + d*hashLen
	proofLen := 4 + 4 + len(s.MerkleProof.Path)*hashLen
	return otsLen + proofLen + pkLen
}

// SigningError reports that grinding exhausted its retry budget.
type SigningError struct {
	Message  string
	Attempts int
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("%s after %d attempts", e.Message, e.Attempts)
}

// errEpochNotActive is returned internally when an epoch falls inside
// [0, lifetime) but outside the signer's activation window.
var errEpochNotActive = errors.New("xmss: epoch not active for this signer")

type keyPair struct {
	sk Sk
	pk Pk
}

// Signer owns lifetime OTS key pairs (or a sub-window of them), the Merkle
// tree over their public keys, and the randomness source used to grind
// nonces. An epoch must be used at most once across all replicas of a
// signer sharing the same keys: reuse breaks the one-time-signature
// assumption.
type Signer struct {
	hasher          hash.Hasher
	src             io.Reader
	maxRetries      int
	lifetime        int
	activationEpoch int
	numActiveEpochs int

	Spec  spec.Spec
	Param hash.Param
	Root  hash.Hash

	tree     *merkle.Tree
	keyPairs map[int]keyPair
}

// NewSigner creates a signer with OTS key pairs for every epoch in
// [0, lifetime). lifetime must be a power of two.
func NewSigner(src io.Reader, maxRetries int, sp spec.Spec, lifetime int) *Signer {
	return NewSignerWithActivation(src, maxRetries, sp, lifetime, 0, lifetime)
}

// NewSignerWithActivation creates a signer whose Merkle tree spans the
// full lifetime (lifetime leaves, one root) but which only materializes
// OTS key pairs for the window [activationEpoch, activationEpoch+numActiveEpochs).
// Leaves outside that window are filled with random domain values drawn
// from src, so the tree still commits to exactly lifetime leaves under a
// single root; Sign rejects any epoch outside the window.
//
// Byte-consumption order from src is normative: the param (sp.ParamLen
// bytes) first, then, per active epoch in increasing order, dimension
// 32-byte start hashes; inactive epochs each consume one 32-byte padding
// draw at their place in the same increasing epoch order.
func NewSignerWithActivation(src io.Reader, maxRetries int, sp spec.Spec, lifetime, activationEpoch, numActiveEpochs int) *Signer {
	sp.Validate()
	if lifetime <= 0 || lifetime&(lifetime-1) != 0 {
		panic("xmss: lifetime must be a power of two")
	}
	if activationEpoch < 0 || numActiveEpochs < 0 || activationEpoch+numActiveEpochs > lifetime {
		panic("xmss: activation window out of range for this lifetime")
	}

	h := hash.NewKeccak256()

	param := make(hash.Param, sp.ParamLen)
	if _, err := io.ReadFull(src, param); err != nil {
		panic("xmss: failed to read parameter from randomness source: " + err.Error())
	}

	keyPairs := make(map[int]keyPair, numActiveEpochs)
	leaves := make([]hash.Hash, lifetime)
	for epoch := 0; epoch < lifetime; epoch++ {
		if epoch >= activationEpoch && epoch < activationEpoch+numActiveEpochs {
			sk := newSk(src, param, sp)
			pk := derivePk(h, sk, sp)
			keyPairs[epoch] = keyPair{sk: sk, pk: pk}
			leaves[epoch] = hash.PublicKeyLeaf(h, param, pk.EndHashes)
		} else {
			var padding hash.Hash
			if _, err := io.ReadFull(src, padding[:]); err != nil {
				panic("xmss: failed to read padding leaf from randomness source: " + err.Error())
			}
			leaves[epoch] = padding
		}
	}

	tree := merkle.NewTree(h, param, leaves)

	return &Signer{
		hasher:          h,
		src:             src,
		maxRetries:      maxRetries,
		lifetime:        lifetime,
		activationEpoch: activationEpoch,
		numActiveEpochs: numActiveEpochs,
		Spec:            sp,
		Param:           param,
		Root:            tree.Root(),
		tree:            tree,
		keyPairs:        keyPairs,
	}
}

// newSk draws sp.Dimension() fresh 32-byte start hashes from src.
func newSk(src io.Reader, param hash.Param, sp spec.Spec) Sk {
	start := make([]hash.Hash, sp.Dimension())
	for i := range start {
		if _, err := io.ReadFull(src, start[i][:]); err != nil {
			panic("xmss: failed to read start hash from randomness source: " + err.Error())
		}
	}
	return Sk{Param: param, StartHashes: start}
}

// signImpl performs the work shared by Sign and SignErr.
func (s *Signer) signImpl(epoch int, message hash.Message) (*Signature, error) {
	if epoch < 0 || epoch >= s.lifetime {
		panic("xmss: epoch must be less than the signer's lifetime")
	}
	kp, active := s.keyPairs[epoch]
	if !active {
		return nil, errEpochNotActive
	}

	cw, nonce, ok := codeword.Grind(s.Spec, s.hasher, s.maxRetries, kp.sk.Param, message, s.src)
	if !ok {
		return nil, &SigningError{Message: "failed to grind a valid codeword", Attempts: s.maxRetries}
	}
	if cw.Dimension() != s.Spec.Dimension() {
		panic("xmss: codeword dimension does not match spec")
	}

	coords := cw.Coords()
	intermediate := make([]hash.Hash, len(coords))
	for i, start := range kp.sk.StartHashes {
		intermediate[i] = hash.Chain(s.hasher, kp.sk.Param, i, start, 0, int(coords[i]))
	}

	return &Signature{
		Ots:         OtsSignature{Nonce: nonce, IntermediateHashes: intermediate},
		MerkleProof: s.tree.Proof(epoch),
		PublicKey:   kp.pk,
	}, nil
}

// Sign signs message at epoch, returning false if grinding exhausted its
// retry budget or the epoch is outside the signer's activation window.
// epoch must be less than the signer's lifetime, or Sign panics: that is a
// programmer error, not a recoverable condition.
func (s *Signer) Sign(epoch int, message hash.Message) (*Signature, bool) {
	sig, err := s.signImpl(epoch, message)
	return sig, err == nil
}

// SignErr is Sign's error-returning counterpart, surfacing *SigningError
// (with the attempt count) via errors.As for callers that want it.
func (s *Signer) SignErr(epoch int, message hash.Message) (*Signature, error) {
	return s.signImpl(epoch, message)
}

// VerifySignature verifies sig against message under param and root. It
// reconstructs the codeword from signature.pk.param (not the outer param),
// completes every chain, and verifies the Merkle path — in that fixed
// order, without short-circuiting on the first chain mismatch, so that no
// early-exit timing signal reveals which coordinate failed first.
//
// param and sig.PublicKey.Param must match byte-for-byte: this is the
// conservative resolution of the open question in the design notes over
// whether the two parameters may legitimately differ.
func VerifySignature(sp spec.Spec, param hash.Param, message hash.Message, sig *Signature, root hash.Hash) bool {
	if sig == nil {
		return false
	}
	if !bytes.Equal(param, sig.PublicKey.Param) {
		return false
	}

	h := hash.NewKeccak256()
	pk := sig.PublicKey

	cw := codeword.New(sp, h, pk.Param, message, sig.Ots.Nonce)
	validSum := cw.Sum() == sp.TargetSum

	if cw.Dimension() != sp.Dimension() || len(sig.Ots.IntermediateHashes) != sp.Dimension() || len(pk.EndHashes) != sp.Dimension() {
		return false
	}

	chainLen := sp.ChainLen()
	coords := cw.Coords()
	chainsOK := true
	for i, intermediate := range sig.Ots.IntermediateHashes {
		pos := int(coords[i])
		if pos >= chainLen {
			chainsOK = false
			continue
		}
		end := hash.Chain(h, pk.Param, i, intermediate, pos, chainLen-1-pos)
		if end != pk.EndHashes[i] {
			chainsOK = false
		}
	}

	leaf := hash.PublicKeyLeaf(h, param, pk.EndHashes)
	merkleOK := sig.MerkleProof.Verify(h, param, leaf, root)

	return validSum && chainsOK && merkleOK
}
