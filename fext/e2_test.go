package fext

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func genE2() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		var a E2
		a.A0.SetUint64(genParams.NextUint64())
		a.A1.SetUint64(genParams.NextUint64())
		return gopter.NewGenResult(a, gopter.NoShrinker)
	}
}

func TestE2Ops(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("(a+b)+c == a+(b+c)", prop.ForAll(
		func(a, b, c E2) bool {
			var l, r E2
			l.Add(&a, &b).Add(&l, &c)
			r.Add(&b, &c).Add(&a, &r)
			return l.Equal(&r)
		},
		genE2(), genE2(), genE2(),
	))

	properties.Property("a*(b+c) == a*b+a*c", prop.ForAll(
		func(a, b, c E2) bool {
			var l, t1, t2, r E2
			l.Add(&b, &c).Mul(&l, &a)
			t1.Mul(&a, &b)
			t2.Mul(&a, &c)
			r.Add(&t1, &t2)
			return l.Equal(&r)
		},
		genE2(), genE2(), genE2(),
	))

	properties.Property("a * 1/a == 1", prop.ForAll(
		func(a E2) bool {
			if a.IsZero() {
				return true
			}
			var inv, one E2
			inv.Inverse(&a)
			one.Mul(&a, &inv)
			return one.IsOne()
		},
		genE2(),
	))

	properties.Property("a - a == 0", prop.ForAll(
		func(a E2) bool {
			var z E2
			z.Sub(&a, &a)
			return z.IsZero()
		},
		genE2(),
	))

	properties.Property("Square == Mul self", prop.ForAll(
		func(a E2) bool {
			var s, m E2
			s.Square(&a)
			m.Mul(&a, &a)
			return s.Equal(&m)
		},
		genE2(),
	))

	properties.Property("conjugation fixes the base field norm", prop.ForAll(
		func(a E2) bool {
			var c, n E2
			c.Conjugate(&a)
			n.Mul(&a, &c)
			return n.A1.IsZero()
		},
		genE2(),
	))

	properties.TestingRun(t)
}

func TestE2Residue(t *testing.T) {
	// u * u == 7
	var u, u2 E2
	u.A1.SetOne()
	u2.Mul(&u, &u)
	require.True(t, u2.A1.IsZero())
	var seven goldilocks.Element
	seven.SetUint64(Residue)
	require.True(t, u2.A0.Equal(&seven))
}

func TestE2Exp(t *testing.T) {
	var a E2
	_, err := a.SetRandom()
	require.NoError(t, err)

	// x^(2^5) via ExpPow2 and via Exp agree
	var p2, e E2
	p2.ExpPow2(&a, 5)
	e.Exp(a, big.NewInt(32))
	require.True(t, p2.Equal(&e))

	// multiplicative order divides p^2 - 1: x^(p^2-1) == 1 for nonzero x
	if !a.IsZero() {
		p := new(big.Int).SetUint64(0xffffffff00000001)
		order := new(big.Int).Mul(p, p)
		order.Sub(order, big.NewInt(1))
		var one E2
		one.Exp(a, order)
		require.True(t, one.IsOne())
	}
}

func TestE2Bytes(t *testing.T) {
	var a E2
	_, err := a.SetRandom()
	require.NoError(t, err)

	var b E2
	b.SetBytes(a.Marshal())
	require.True(t, a.Equal(&b))
}

func TestE2MulByElement(t *testing.T) {
	var a E2
	_, err := a.SetRandom()
	require.NoError(t, err)
	var s goldilocks.Element
	s.SetUint64(42)

	var viaElement, viaMul, sExt E2
	viaElement.MulByElement(&a, &s)
	sExt.SetFromBase(&s)
	viaMul.Mul(&a, &sExt)
	require.True(t, viaElement.Equal(&viaMul))
}
