package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChallengerDeterminism(t *testing.T) {
	c1 := NewChallenger("a", "b")
	c2 := NewChallenger("a", "b")

	require.NoError(t, c1.Observe([]byte("cap")))
	require.NoError(t, c2.Observe([]byte("cap")))

	x1, err := c1.Challenge()
	require.NoError(t, err)
	x2, err := c2.Challenge()
	require.NoError(t, err)
	require.True(t, x1.Equal(&x2))

	// unbound second challenge still folds in the first one
	y1, err := c1.Challenge()
	require.NoError(t, err)
	y2, err := c2.Challenge()
	require.NoError(t, err)
	require.True(t, y1.Equal(&y2))
	require.False(t, x1.Equal(&y1))
}

func TestChallengerSensitivity(t *testing.T) {
	c1 := NewChallenger("a")
	c2 := NewChallenger("a")

	require.NoError(t, c1.Observe([]byte("cap")))
	require.NoError(t, c2.Observe([]byte("cap!")))

	x1, err := c1.Challenge()
	require.NoError(t, err)
	x2, err := c2.Challenge()
	require.NoError(t, err)
	require.False(t, x1.Equal(&x2))
}

func TestChallengerObservationOrder(t *testing.T) {
	c1 := NewChallenger("a")
	c2 := NewChallenger("a")

	require.NoError(t, c1.Observe([]byte("one")))
	require.NoError(t, c1.Observe([]byte("two")))
	require.NoError(t, c2.Observe([]byte("two")))
	require.NoError(t, c2.Observe([]byte("one")))

	x1, err := c1.Challenge()
	require.NoError(t, err)
	x2, err := c2.Challenge()
	require.NoError(t, err)
	require.False(t, x1.Equal(&x2))
}

func TestChallengerExhaustion(t *testing.T) {
	c := NewChallenger("only")
	_, err := c.Challenge()
	require.NoError(t, err)

	_, err = c.Challenge()
	require.ErrorIs(t, err, ErrExhausted)
	require.ErrorIs(t, c.Observe([]byte("late")), ErrExhausted)
}

func TestChallengeExt(t *testing.T) {
	c1 := NewChallenger("z")
	c2 := NewChallenger("z")
	require.NoError(t, c1.Observe([]byte("cap")))
	require.NoError(t, c2.Observe([]byte("cap")))

	z1, err := c1.ChallengeExt()
	require.NoError(t, err)
	z2, err := c2.ChallengeExt()
	require.NoError(t, err)
	require.True(t, z1.Equal(&z2))
	require.False(t, z1.A1.IsZero(), "extension challenge should populate both coordinates")
}
