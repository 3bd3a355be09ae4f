package xmss

import (
	"context"
	"runtime"
	"sync"

	"github.com/IrreducibleOSS/leansig/hash"
	"github.com/IrreducibleOSS/leansig/spec"
)

// ValidatorSignature is one validator's contribution to an aggregate: its
// epoch signature, the root its public key was committed under, and the
// per-signer parameter used to produce it. Epoch is carried for audit
// purposes only; verification never consults it.
type ValidatorSignature struct {
	Epoch     int
	Signature Signature
	Root      hash.Hash
	Param     hash.Param
}

// AggregatedSignature is naive concatenation: the signature grows linearly
// with the number of validators, with no cryptographic compression.
type AggregatedSignature struct {
	Signatures []ValidatorSignature
}

// AggregatedVerifier checks an AggregatedSignature against a registered set
// of roots. Roots is keyed by the 32-byte root value for O(1) membership;
// duplicate roots supplied at construction are harmless.
type AggregatedVerifier struct {
	spec  spec.Spec
	roots map[hash.Hash]struct{}
}

// NewAggregatedVerifier registers roots as the set any ValidatorSignature's
// root must belong to.
func NewAggregatedVerifier(sp spec.Spec, roots []hash.Hash) *AggregatedVerifier {
	set := make(map[hash.Hash]struct{}, len(roots))
	for _, r := range roots {
		set[r] = struct{}{}
	}
	return &AggregatedVerifier{spec: sp, roots: set}
}

// parallelThreshold is the aggregate size at or above which Verify fans out
// across goroutines instead of checking sequentially; below it the
// goroutine and channel overhead isn't worth paying.
const parallelThreshold = 8

// Verify accepts an aggregate iff every entry's root is registered and its
// per-signature verification passes — a strict conjunction with no partial
// success. An empty aggregate is vacuously accepted. Entries are checked in
// parallel once the aggregate is large enough to amortize the goroutine
// overhead; any single failure short-circuits the others via context
// cancellation, but the decision is always the same conjunction regardless
// of how many entries actually ran to completion.
func (v *AggregatedVerifier) Verify(message hash.Message, agg *AggregatedSignature) bool {
	if agg == nil || len(agg.Signatures) == 0 {
		return true
	}
	if len(agg.Signatures) < parallelThreshold {
		for i := range agg.Signatures {
			if !v.verifyOne(message, &agg.Signatures[i]) {
				return false
			}
		}
		return true
	}
	return v.verifyParallel(message, agg.Signatures)
}

func (v *AggregatedVerifier) verifyOne(message hash.Message, vs *ValidatorSignature) bool {
	if _, ok := v.roots[vs.Root]; !ok {
		return false
	}
	return VerifySignature(v.spec, vs.Param, message, &vs.Signature, vs.Root)
}

func (v *AggregatedVerifier) verifyParallel(message hash.Message, entries []ValidatorSignature) bool {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workers := runtime.GOMAXPROCS(0)
	if workers > len(entries) {
		workers = len(entries)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := true

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				if !v.verifyOne(message, &entries[i]) {
					mu.Lock()
					ok = false
					mu.Unlock()
					cancel()
					return
				}
				select {
				case <-ctx.Done():
					return
				default:
				}
			}
		}()
	}

	for i := range entries {
		select {
		case indices <- i:
		case <-ctx.Done():
			close(indices)
			wg.Wait()
			return false
		}
	}
	close(indices)
	wg.Wait()

	return ok
}
