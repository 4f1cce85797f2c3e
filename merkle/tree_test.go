package merkle

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomLeaves(t *testing.T, n, size int) [][]byte {
	t.Helper()
	leaves := make([][]byte, n)
	for i := range leaves {
		leaves[i] = make([]byte, size)
		_, err := rand.Read(leaves[i])
		require.NoError(t, err)
	}
	return leaves
}

func TestTreeOpenVerify(t *testing.T) {
	for _, capHeight := range []int{0, 1, 3} {
		leaves := randomLeaves(t, 16, 24)
		tree, err := NewTree(leaves, capHeight)
		require.NoError(t, err)

		c := tree.Cap()
		require.Len(t, c, 1<<capHeight)

		for i := range leaves {
			proof := tree.Open(i)
			require.NoError(t, VerifyOpening(leaves[i], i, proof, c), "capHeight=%d index=%d", capHeight, i)
		}
	}
}

func TestTreeRejectsTamper(t *testing.T) {
	leaves := randomLeaves(t, 16, 24)
	tree, err := NewTree(leaves, 1)
	require.NoError(t, err)
	c := tree.Cap()

	proof := tree.Open(5)

	// wrong leaf
	require.Error(t, VerifyOpening(leaves[6], 5, proof, c))

	// wrong index
	require.Error(t, VerifyOpening(leaves[5], 6, proof, c))

	// corrupted sibling
	proof.Siblings[0][0] ^= 1
	require.Error(t, VerifyOpening(leaves[5], 5, proof, c))
}

func TestTreeErrors(t *testing.T) {
	_, err := NewTree(nil, 0)
	require.ErrorIs(t, err, ErrNotPowerOfTwo)

	_, err = NewTree(randomLeaves(t, 6, 8), 0)
	require.ErrorIs(t, err, ErrNotPowerOfTwo)

	_, err = NewTree(randomLeaves(t, 4, 8), 3)
	require.ErrorIs(t, err, ErrCapTooLarge)
}

func TestTreeDeterminism(t *testing.T) {
	leaves := randomLeaves(t, 8, 16)
	t1, err := NewTree(leaves, 2)
	require.NoError(t, err)
	t2, err := NewTree(leaves, 2)
	require.NoError(t, err)
	require.Equal(t, t1.Cap(), t2.Cap())
}

func TestFullHeightCap(t *testing.T) {
	// capHeight == tree height: the cap is the hashed leaves themselves and
	// openings are empty
	leaves := randomLeaves(t, 8, 16)
	tree, err := NewTree(leaves, 3)
	require.NoError(t, err)

	proof := tree.Open(2)
	require.Empty(t, proof.Siblings)
	require.NoError(t, VerifyOpening(leaves[2], 2, proof, tree.Cap()))
}
