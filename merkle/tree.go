// Package merkle implements the binary Merkle tree backing the polynomial
// commitment oracle.
//
// A tree is committed by a cap rather than a single root: hashing stops
// 2^capHeight nodes below the top, and the commitment is that whole level.
// Openings are correspondingly shorter, which matters for the query phase of
// the low-degree test where many indices are opened per proof.
package merkle

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// DigestSize is the size of a node digest in bytes.
const DigestSize = blake2b.Size256

// Digest is a tree node value.
type Digest [DigestSize]byte

// Cap is the set of 2^capHeight subtree roots committing to a tree.
type Cap []Digest

// Marshal flattens the cap for transcript absorption.
func (c Cap) Marshal() []byte {
	out := make([]byte, 0, len(c)*DigestSize)
	for i := range c {
		out = append(out, c[i][:]...)
	}
	return out
}

// Proof authenticates one leaf against a Cap: the sibling digests from the
// leaf up to the cap level.
type Proof struct {
	Siblings []Digest
}

// Tree is a Merkle tree over a power-of-two number of leaves. Read-only
// after construction.
type Tree struct {
	capHeight int
	// levels[0] are the hashed leaves; levels[len-1] is the cap level
	levels [][]Digest
}

var (
	ErrNotPowerOfTwo = errors.New("merkle: number of leaves must be a power of two")
	ErrCapTooLarge   = errors.New("merkle: cap height exceeds tree height")
)

// NewTree hashes the given leaves and builds all levels up to the cap level.
func NewTree(leaves [][]byte, capHeight int) (*Tree, error) {
	n := len(leaves)
	if n == 0 || n&(n-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}
	if capHeight < 0 || (1<<capHeight) > n {
		return nil, ErrCapTooLarge
	}

	hashed := make([]Digest, n)
	for i, leaf := range leaves {
		hashed[i] = blake2b.Sum256(leaf)
	}

	t := &Tree{capHeight: capHeight}
	t.levels = append(t.levels, hashed)
	for len(t.levels[len(t.levels)-1]) > 1<<capHeight {
		prev := t.levels[len(t.levels)-1]
		next := make([]Digest, len(prev)/2)
		for i := range next {
			next[i] = hashPair(prev[2*i], prev[2*i+1])
		}
		t.levels = append(t.levels, next)
	}

	return t, nil
}

// Cap returns the tree's commitment.
func (t *Tree) Cap() Cap {
	top := t.levels[len(t.levels)-1]
	c := make(Cap, len(top))
	copy(c, top)
	return c
}

// Open returns the authentication path for the leaf at index.
func (t *Tree) Open(index int) Proof {
	siblings := make([]Digest, 0, len(t.levels)-1)
	for lvl := 0; lvl < len(t.levels)-1; lvl++ {
		siblings = append(siblings, t.levels[lvl][index^1])
		index >>= 1
	}
	return Proof{Siblings: siblings}
}

// VerifyOpening checks that leaf sits at index in a tree committed by cap.
func VerifyOpening(leaf []byte, index int, proof Proof, cap Cap) error {
	cur := blake2b.Sum256(leaf)
	for _, sib := range proof.Siblings {
		if index&1 == 1 {
			cur = hashPair(sib, cur)
		} else {
			cur = hashPair(cur, sib)
		}
		index >>= 1
	}
	if index >= len(cap) {
		return fmt.Errorf("merkle: index escapes cap of size %d", len(cap))
	}
	if cur != cap[index] {
		return errors.New("merkle: opening does not match cap")
	}
	return nil
}

func hashPair(l, r Digest) Digest {
	var buf [2 * DigestSize]byte
	copy(buf[:DigestSize], l[:])
	copy(buf[DigestSize:], r[:])
	return blake2b.Sum256(buf[:])
}
