package fft

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/require"
)

func randomPoly(t *testing.T, n int) []goldilocks.Element {
	t.Helper()
	a := make([]goldilocks.Element, n)
	for i := range a {
		_, err := a[i].SetRandom()
		require.NoError(t, err)
	}
	return a
}

// evalAt evaluates coefficient-form p at x (Horner).
func evalAt(p []goldilocks.Element, x goldilocks.Element) goldilocks.Element {
	var acc goldilocks.Element
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(&acc, &x)
		acc.Add(&acc, &p[i])
	}
	return acc
}

func TestDomainGenerator(t *testing.T) {
	for _, logM := range []int{1, 3, 8} {
		m := uint64(1) << logM
		d := NewDomain(m)

		// generator has exact order m
		var x goldilocks.Element
		var expo big.Int
		expo.SetUint64(m)
		x.Exp(d.Generator, &expo)
		require.True(t, x.IsOne(), "g^m != 1 for m=%d", m)
		expo.SetUint64(m / 2)
		x.Exp(d.Generator, &expo)
		require.False(t, x.IsOne(), "g has order < m for m=%d", m)

		g := GeneratorOfSize(m)
		require.True(t, d.Generator.Equal(&g))
	}
}

func TestFFTRoundTrip(t *testing.T) {
	for _, n := range []int{2, 8, 64} {
		for _, coset := range []bool{false, true} {
			d := NewDomain(uint64(n))
			p := randomPoly(t, n)
			got := make([]goldilocks.Element, n)
			copy(got, p)

			d.FFT(got, coset)
			d.FFTInverse(got, coset)
			require.Equal(t, p, got, "n=%d coset=%v", n, coset)
		}
	}
}

func TestFFTMatchesHorner(t *testing.T) {
	const n = 16
	d := NewDomain(n)
	p := randomPoly(t, n)

	values := make([]goldilocks.Element, n)
	copy(values, p)
	d.FFT(values, false)

	x := goldilocks.One()
	for i := 0; i < n; i++ {
		want := evalAt(p, x)
		require.True(t, values[i].Equal(&want), "mismatch at index %d", i)
		x.Mul(&x, &d.Generator)
	}
}

func TestFFTCosetMatchesHorner(t *testing.T) {
	const n = 16
	d := NewDomain(n)
	p := randomPoly(t, n)

	values := make([]goldilocks.Element, n)
	copy(values, p)
	d.FFT(values, true)

	x := d.CosetShift
	for i := 0; i < n; i++ {
		want := evalAt(p, x)
		require.True(t, values[i].Equal(&want), "mismatch at index %d", i)
		x.Mul(&x, &d.Generator)
	}
}

func TestZeroPolyOnCoset(t *testing.T) {
	const degreeBits, rateBits = 3, 2
	n := uint64(1) << degreeBits
	extLen := n << rateBits
	bigD := NewDomain(extLen)

	zh := NewZeroPolyOnCoset(degreeBits, rateBits)

	// check 1/(x^n - 1) at every coset point against the table
	x := bigD.CosetShift
	for i := uint64(0); i < extLen; i++ {
		var xn goldilocks.Element
		var e big.Int
		e.SetUint64(n)
		xn.Exp(x, &e)
		var den goldilocks.Element
		one := goldilocks.One()
		den.Sub(&xn, &one)
		den.Inverse(&den)
		require.True(t, den.Equal(zh.EvalInverse(int(i))), "index %d", i)
		x.Mul(&x, &bigD.Generator)
	}
}

func TestLDEOnCoset(t *testing.T) {
	const n, rateBits = 8, 2
	small := NewDomain(n)
	bigD := NewDomain(n << rateBits)

	p := randomPoly(t, n)
	values := make([]goldilocks.Element, n)
	copy(values, p)
	small.FFT(values, false)

	lde := LDEOnCoset(values, rateBits)
	require.Len(t, lde, n<<rateBits)

	x := bigD.CosetShift
	for i := range lde {
		want := evalAt(p, x)
		require.True(t, lde[i].Equal(&want), "mismatch at index %d", i)
		x.Mul(&x, &bigD.Generator)
	}
}

func TestBitReverseInvolution(t *testing.T) {
	a := randomPoly(t, 32)
	b := make([]goldilocks.Element, len(a))
	copy(b, a)
	BitReverse(b)
	BitReverse(b)
	require.Equal(t, a, b)
}
