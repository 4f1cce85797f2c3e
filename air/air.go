// Package air defines the constraint capability consumed by the prover: an
// algebraic intermediate representation evaluated between consecutive rows
// of an execution trace.
//
// The prover never interprets constraints; it hands an AIR a (local, next)
// row pair and a Consumer seeded with a random combination weight, and reads
// back a single accumulated violation term.
package air

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/fext"
)

// Frame is the evaluation window handed to a transition function: the
// current row, the next row (cyclically wrapping at the domain boundary),
// and the public inputs.
type Frame[T any] struct {
	Local        []T
	Next         []T
	PublicInputs []T
}

// AIR is the constraint capability. NumColumns fixes the trace width;
// implementations are expected to write one generic transition function over
// Algebra[T] and instantiate it in both EvalBase and EvalExt (and, for
// proof-composition use, over Sym).
type AIR interface {
	NumColumns() int
	NumPublicInputs() int

	// EvalBase accumulates constraint terms on base field values; this is
	// the path the quotient polynomial is built from.
	EvalBase(frame Frame[goldilocks.Element], cc *Consumer[goldilocks.Element])

	// EvalExt is the same contract on extension field values, used to
	// re-check the quotient identity at the out-of-domain point.
	EvalExt(frame Frame[fext.E2], cc *Consumer[fext.E2])
}

// Consumer accumulates weighted constraint terms for one combination weight
// alpha: each yielded constraint c folds in as acc = acc·alpha + c, so the
// accumulator is linear in alpha and the quotient identity stays
// degree-additive.
//
// Four vanishing classes are supported. Constraint must vanish on every row;
// ConstraintTransition on every row but the last (selector z_last(x) =
// x - g^{n-1}, linear so the quotient degree stays bounded);
// ConstraintFirstRow and ConstraintLastRow only on the boundary rows
// (Lagrange indicator selectors).
type Consumer[T any] struct {
	alg   Algebra[T]
	alpha T
	acc   T

	lagrangeFirst T
	lagrangeLast  T
	zLast         T
}

// NewConsumer seeds a consumer for one evaluation point. lagrangeFirst,
// lagrangeLast and zLast are the selector values at that point.
func NewConsumer[T any](alg Algebra[T], alpha, lagrangeFirst, lagrangeLast, zLast T) *Consumer[T] {
	return &Consumer[T]{
		alg:           alg,
		alpha:         alpha,
		acc:           alg.Zero(),
		lagrangeFirst: lagrangeFirst,
		lagrangeLast:  lagrangeLast,
		zLast:         zLast,
	}
}

// Constraint adds a term that must vanish on all rows.
func (c *Consumer[T]) Constraint(v T) {
	c.acc = c.alg.Add(c.alg.Mul(c.acc, c.alpha), v)
}

// ConstraintTransition adds a term that must vanish on all rows except the
// last.
func (c *Consumer[T]) ConstraintTransition(v T) {
	c.Constraint(c.alg.Mul(v, c.zLast))
}

// ConstraintFirstRow adds a term that must vanish on the first row.
func (c *Consumer[T]) ConstraintFirstRow(v T) {
	c.Constraint(c.alg.Mul(v, c.lagrangeFirst))
}

// ConstraintLastRow adds a term that must vanish on the last row.
func (c *Consumer[T]) ConstraintLastRow(v T) {
	c.Constraint(c.alg.Mul(v, c.lagrangeLast))
}

// Accumulator returns the folded constraint term.
func (c *Consumer[T]) Accumulator() T {
	return c.acc
}
