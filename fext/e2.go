// Package fext implements the degree-2 extension of the Goldilocks field
// used for out-of-domain challenges and openings.
//
// The extension is F_p[u]/(u²-7): 7 is a quadratic non-residue mod
// p = 2⁶⁴-2³²+1, and it is also the generator of the multiplicative group,
// so the same constant serves as coset shift and as extension residue.
package fext

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// Residue is w in u² = w, the defining equation of the extension.
const Residue = 7

// Bytes is the size of the canonical byte representation of an E2.
const Bytes = 2 * goldilocks.Bytes

// E2 is an element a0 + a1·u of the quadratic extension.
type E2 struct {
	A0, A1 goldilocks.Element
}

// SetZero sets z to 0 and returns z.
func (z *E2) SetZero() *E2 {
	z.A0.SetZero()
	z.A1.SetZero()
	return z
}

// SetOne sets z to 1 and returns z.
func (z *E2) SetOne() *E2 {
	z.A0.SetOne()
	z.A1.SetZero()
	return z
}

// Set sets z to x and returns z.
func (z *E2) Set(x *E2) *E2 {
	*z = *x
	return z
}

// SetFromBase embeds a base field element and returns z.
func (z *E2) SetFromBase(x *goldilocks.Element) *E2 {
	z.A0.Set(x)
	z.A1.SetZero()
	return z
}

// SetUint64 sets z to the embedding of v and returns z.
func (z *E2) SetUint64(v uint64) *E2 {
	z.A0.SetUint64(v)
	z.A1.SetZero()
	return z
}

// SetRandom sets z to a uniformly random element and returns z.
func (z *E2) SetRandom() (*E2, error) {
	if _, err := z.A0.SetRandom(); err != nil {
		return nil, err
	}
	if _, err := z.A1.SetRandom(); err != nil {
		return nil, err
	}
	return z, nil
}

// SetBytes interprets e as two big-endian halves, reduces each into the base
// field and returns z. It accepts any even length; the transcript hands it
// 32-byte digests.
func (z *E2) SetBytes(e []byte) *E2 {
	half := len(e) / 2
	z.A0.SetBytes(e[:half])
	z.A1.SetBytes(e[half:])
	return z
}

// Marshal returns the canonical big-endian encoding A0 || A1.
func (z *E2) Marshal() []byte {
	out := make([]byte, 0, Bytes)
	out = append(out, z.A0.Marshal()...)
	out = append(out, z.A1.Marshal()...)
	return out
}

// Equal returns z == x.
func (z *E2) Equal(x *E2) bool {
	return z.A0.Equal(&x.A0) && z.A1.Equal(&x.A1)
}

// IsZero returns z == 0.
func (z *E2) IsZero() bool {
	return z.A0.IsZero() && z.A1.IsZero()
}

// IsOne returns z == 1.
func (z *E2) IsOne() bool {
	return z.A0.IsOne() && z.A1.IsZero()
}

func (z *E2) String() string {
	return z.A0.String() + "+" + z.A1.String() + "*u"
}

// Add sets z = x + y and returns z.
func (z *E2) Add(x, y *E2) *E2 {
	z.A0.Add(&x.A0, &y.A0)
	z.A1.Add(&x.A1, &y.A1)
	return z
}

// Sub sets z = x - y and returns z.
func (z *E2) Sub(x, y *E2) *E2 {
	z.A0.Sub(&x.A0, &y.A0)
	z.A1.Sub(&x.A1, &y.A1)
	return z
}

// Double sets z = 2x and returns z.
func (z *E2) Double(x *E2) *E2 {
	z.A0.Double(&x.A0)
	z.A1.Double(&x.A1)
	return z
}

// Neg sets z = -x and returns z.
func (z *E2) Neg(x *E2) *E2 {
	z.A0.Neg(&x.A0)
	z.A1.Neg(&x.A1)
	return z
}

// Conjugate sets z = a0 - a1·u and returns z.
func (z *E2) Conjugate(x *E2) *E2 {
	z.A0.Set(&x.A0)
	z.A1.Neg(&x.A1)
	return z
}

// Mul sets z = x·y and returns z.
//
// (a0+a1·u)(b0+b1·u) = a0b0 + w·a1b1 + (a0b1+a1b0)·u
func (z *E2) Mul(x, y *E2) *E2 {
	var t0, t1, t2 goldilocks.Element
	t0.Mul(&x.A0, &y.A0)
	t1.Mul(&x.A1, &y.A1)
	t2.Mul(&x.A0, &y.A1)
	var a1 goldilocks.Element
	a1.Mul(&x.A1, &y.A0).Add(&a1, &t2)
	mulByResidue(&t1)
	z.A0.Add(&t0, &t1)
	z.A1.Set(&a1)
	return z
}

// Square sets z = x² and returns z.
func (z *E2) Square(x *E2) *E2 {
	return z.Mul(x, x)
}

// MulByElement sets z = x scaled by the base element y and returns z.
func (z *E2) MulByElement(x *E2, y *goldilocks.Element) *E2 {
	z.A0.Mul(&x.A0, y)
	z.A1.Mul(&x.A1, y)
	return z
}

// Inverse sets z = 1/x and returns z. x must be nonzero.
//
// 1/(a0+a1·u) = (a0-a1·u)/(a0²-w·a1²); the denominator is nonzero for
// nonzero x because w is a non-residue.
func (z *E2) Inverse(x *E2) *E2 {
	var n, t goldilocks.Element
	n.Square(&x.A0)
	t.Square(&x.A1)
	mulByResidue(&t)
	n.Sub(&n, &t)
	n.Inverse(&n)
	z.A0.Mul(&x.A0, &n)
	z.A1.Mul(&x.A1, &n).Neg(&z.A1)
	return z
}

// Div sets z = x/y and returns z.
func (z *E2) Div(x, y *E2) *E2 {
	var yInv E2
	yInv.Inverse(y)
	return z.Mul(x, &yInv)
}

// Exp sets z = x^k (k regular big.Int, k >= 0) and returns z.
func (z *E2) Exp(x E2, k *big.Int) *E2 {
	z.SetOne()
	b := k.Bytes()
	for i := 0; i < len(b); i++ {
		w := b[i]
		for mask := byte(0x80); mask > 0; mask >>= 1 {
			z.Square(z)
			if w&mask > 0 {
				z.Mul(z, &x)
			}
		}
	}
	return z
}

// ExpPow2 sets z = x^(2^k) and returns z.
func (z *E2) ExpPow2(x *E2, k int) *E2 {
	z.Set(x)
	for i := 0; i < k; i++ {
		z.Square(z)
	}
	return z
}

func mulByResidue(x *goldilocks.Element) {
	var t goldilocks.Element
	t.Double(x).Double(&t).Double(&t) // 8x
	x.Sub(&t, x)                      // 7x
}
