// Package merkle implements the binary hash tree binding a power-of-two
// sequence of leaf hashes to a single root, together with authentication
// path generation and verification.
package merkle

import (
	"math/bits"

	"github.com/IrreducibleOSS/leansig/hash"
)

// Tree is a binary Merkle tree over a power-of-two number of leaves.
// levels[0] is the leaf layer; levels[len(levels)-1] holds the single root.
type Tree struct {
	levels [][]hash.Hash
}

// NewTree builds a tree bottom-up from leaves. len(leaves) must be a power
// of two; constructing with any other count is a programmer error.
func NewTree(h hash.Hasher, param hash.Param, leaves []hash.Hash) *Tree {
	n := len(leaves)
	if n == 0 || n&(n-1) != 0 {
		panic("merkle: number of leaves must be a power of two")
	}

	height := bits.Len(uint(n)) - 1
	levels := make([][]hash.Hash, 0, height+1)
	levels = append(levels, leaves)

	for level := 0; level < height; level++ {
		prev := levels[level]
		parents := make([]hash.Hash, len(prev)/2)
		for i := range parents {
			parents[i] = hash.TreeNode(h, param, prev[2*i], prev[2*i+1], uint32(level), uint32(i))
		}
		levels = append(levels, parents)
	}

	return &Tree{levels: levels}
}

// Root returns the tree's root hash.
func (t *Tree) Root() hash.Hash {
	return t.levels[len(t.levels)-1][0]
}

// Depth returns log2(number of leaves).
func (t *Tree) Depth() int {
	return len(t.levels) - 1
}

// Proof returns the authentication path for the leaf at leafIndex.
func (t *Tree) Proof(leafIndex int) Proof {
	depth := t.Depth()
	path := make([]hash.Hash, 0, depth)
	index := leafIndex
	for level := 0; level < depth; level++ {
		sibling := index ^ 1
		path = append(path, t.levels[level][sibling])
		index /= 2
	}
	return Proof{LeafIndex: leafIndex, Path: path}
}

// Proof is a Merkle authentication path: the leaf's index and the ordered
// siblings of each ancestor, leaf level first.
type Proof struct {
	LeafIndex int
	Path      []hash.Hash
}

// Verify recomputes the root from leaf and the proof's path, placing the
// current value left or right at each level according to the LSB of the
// running index, and reports whether it matches root.
func (p Proof) Verify(h hash.Hasher, param hash.Param, leaf hash.Hash, root hash.Hash) bool {
	current := leaf
	index := p.LeafIndex
	for level, sibling := range p.Path {
		var left, right hash.Hash
		if index&1 == 0 {
			left, right = current, sibling
		} else {
			left, right = sibling, current
		}
		current = hash.TreeNode(h, param, left, right, uint32(level), uint32(index/2))
		index /= 2
	}
	return current == root
}
