package air

import (
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func gf(v uint64) goldilocks.Element {
	var z goldilocks.Element
	z.SetUint64(v)
	return z
}

// The accumulator must be a polynomial in alpha with the yielded terms as
// coefficients, most recent term in the lowest degree.
func TestConsumerFolding(t *testing.T) {
	alg := GF{}
	alpha := gf(10)
	cc := NewConsumer[goldilocks.Element](alg, alpha, alg.Zero(), alg.Zero(), alg.One())

	cc.Constraint(gf(3))
	cc.Constraint(gf(4))
	cc.Constraint(gf(5))

	// 3*alpha^2 + 4*alpha + 5
	acc := cc.Accumulator()
	want := gf(345)
	require.True(t, acc.Equal(&want))
}

func TestConsumerSelectors(t *testing.T) {
	alg := GF{}

	// at a point where lagrangeFirst = 1, lagrangeLast = 0, zLast = 9
	cc := NewConsumer[goldilocks.Element](alg, gf(100), gf(1), gf(0), gf(9))
	cc.ConstraintFirstRow(gf(7)) // 7 * 1
	cc.ConstraintLastRow(gf(5))  // 5 * 0
	cc.ConstraintTransition(gf(2)) // 2 * 9

	// 7*100^2 + 0*100 + 18
	want := gf(70018)
	acc := cc.Accumulator()
	require.True(t, acc.Equal(&want))
}

// The symbolic algebra must agree with the numeric one on every expression
// shape.
func TestSymbolicAgreesWithNumeric(t *testing.T) {
	const numColumns, numPublic = 3, 1
	symFrame, nbVars := NewSymbolicFrame(numColumns, numPublic)
	require.Equal(t, 2*numColumns+numPublic, nbVars)

	build := func(alg Algebra[*Expr], f Frame[*Expr]) *Expr {
		// (local0 * next1 - public0) + (-(local2) + 7)
		t1 := alg.Sub(alg.Mul(f.Local[0], f.Next[1]), f.PublicInputs[0])
		t2 := alg.Add(alg.Neg(f.Local[2]), alg.FromUint64(7))
		return alg.Add(t1, t2)
	}
	buildGF := func(alg Algebra[goldilocks.Element], f Frame[goldilocks.Element]) goldilocks.Element {
		t1 := alg.Sub(alg.Mul(f.Local[0], f.Next[1]), f.PublicInputs[0])
		t2 := alg.Add(alg.Neg(f.Local[2]), alg.FromUint64(7))
		return alg.Add(t1, t2)
	}

	expr := build(Sym{}, symFrame)

	for trial := 0; trial < 32; trial++ {
		assignment := make([]goldilocks.Element, nbVars)
		for i := range assignment {
			_, err := assignment[i].SetRandom()
			require.NoError(t, err)
		}
		numFrame := Frame[goldilocks.Element]{
			Local:        assignment[:numColumns],
			Next:         assignment[numColumns : 2*numColumns],
			PublicInputs: assignment[2*numColumns:],
		}

		got := expr.Eval(assignment)
		want := buildGF(GF{}, numFrame)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("symbolic evaluation diverges (-numeric +symbolic):\n%s", diff)
		}
	}
}

// Base and extension algebras agree on embedded values.
func TestExtensionEmbedding(t *testing.T) {
	gfAlg, efAlg := GF{}, EF{}

	a, b := gf(123456789), gf(987654321)
	sum := gfAlg.Add(a, b)
	prod := gfAlg.Mul(a, b)

	ea := efAlg.FromUint64(123456789)
	eb := efAlg.FromUint64(987654321)
	esum := efAlg.Add(ea, eb)
	eprod := efAlg.Mul(ea, eb)

	require.True(t, esum.A0.Equal(&sum))
	require.True(t, esum.A1.IsZero())
	require.True(t, eprod.A0.Equal(&prod))
	require.True(t, eprod.A1.IsZero())
}
