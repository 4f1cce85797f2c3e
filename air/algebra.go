package air

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/fext"
)

// Algebra abstracts the ring a transition function is evaluated in. A
// constraint set is written once as a generic function over Algebra[T] and
// instantiated for the base field (quotient evaluation), the extension field
// (out-of-domain consistency) and the symbolic form (circuit description).
// All three must agree on every input; the prover's tests check this.
type Algebra[T any] interface {
	Zero() T
	One() T
	FromUint64(v uint64) T
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Neg(a T) T
}

// GF is the base field algebra.
type GF struct{}

func (GF) Zero() (z goldilocks.Element) { return z }
func (GF) One() goldilocks.Element      { return goldilocks.One() }
func (GF) FromUint64(v uint64) goldilocks.Element {
	var z goldilocks.Element
	z.SetUint64(v)
	return z
}
func (GF) Add(a, b goldilocks.Element) goldilocks.Element {
	var z goldilocks.Element
	z.Add(&a, &b)
	return z
}
func (GF) Sub(a, b goldilocks.Element) goldilocks.Element {
	var z goldilocks.Element
	z.Sub(&a, &b)
	return z
}
func (GF) Mul(a, b goldilocks.Element) goldilocks.Element {
	var z goldilocks.Element
	z.Mul(&a, &b)
	return z
}
func (GF) Neg(a goldilocks.Element) goldilocks.Element {
	var z goldilocks.Element
	z.Neg(&a)
	return z
}

// EF is the quadratic extension algebra.
type EF struct{}

func (EF) Zero() (z fext.E2) { return z }
func (EF) One() fext.E2 {
	var z fext.E2
	z.SetOne()
	return z
}
func (EF) FromUint64(v uint64) fext.E2 {
	var z fext.E2
	z.SetUint64(v)
	return z
}
func (EF) Add(a, b fext.E2) fext.E2 {
	var z fext.E2
	z.Add(&a, &b)
	return z
}
func (EF) Sub(a, b fext.E2) fext.E2 {
	var z fext.E2
	z.Sub(&a, &b)
	return z
}
func (EF) Mul(a, b fext.E2) fext.E2 {
	var z fext.E2
	z.Mul(&a, &b)
	return z
}
func (EF) Neg(a fext.E2) fext.E2 {
	var z fext.E2
	z.Neg(&a)
	return z
}
