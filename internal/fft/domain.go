// Package fft provides radix-2 transforms between coefficient and value form
// over power-of-two subgroups of the Goldilocks multiplicative group, and the
// coset numerics the prover builds on (shifted evaluation, vanishing
// polynomial inverses).
package fft

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/internal/utils"
)

// the largest power-of-two subgroup of the Goldilocks multiplicative group
// has order 2^32; its generator below is gen^((p-1)/2^32) with gen = 7.
const (
	twoAdicity       = 32
	twoAdicRoot      = 1753635133440165772
	multiplicativeGen = 7
)

// Domain is a multiplicative subgroup of order 2^k, with the data needed to
// evaluate polynomials on it or on its shifted coset.
type Domain struct {
	Cardinality    uint64
	CardinalityInv goldilocks.Element
	Generator      goldilocks.Element
	GeneratorInv   goldilocks.Element

	// coset shift (the multiplicative group generator) and its inverse
	CosetShift    goldilocks.Element
	CosetShiftInv goldilocks.Element
}

// NewDomain returns the domain of size m. m must be a power of two not
// exceeding 2^32; anything else is a caller bug and panics.
func NewDomain(m uint64) *Domain {
	logM, ok := utils.Log2Strict(m)
	if !ok || logM > twoAdicity {
		panic("fft: domain size must be a power of two <= 2^32")
	}

	d := &Domain{Cardinality: m}

	var root goldilocks.Element
	root.SetUint64(twoAdicRoot)
	var expo big.Int
	expo.SetUint64(uint64(1) << (twoAdicity - logM))
	d.Generator.Exp(root, &expo)
	d.GeneratorInv.Inverse(&d.Generator)

	var card goldilocks.Element
	card.SetUint64(m)
	d.CardinalityInv.Inverse(&card)

	d.CosetShift.SetUint64(multiplicativeGen)
	d.CosetShiftInv.Inverse(&d.CosetShift)

	return d
}

// GeneratorOfSize returns the generator of the order-m subgroup without
// building a full domain. Same preconditions as NewDomain.
func GeneratorOfSize(m uint64) goldilocks.Element {
	logM, ok := utils.Log2Strict(m)
	if !ok || logM > twoAdicity {
		panic("fft: domain size must be a power of two <= 2^32")
	}
	var root, g goldilocks.Element
	root.SetUint64(twoAdicRoot)
	var expo big.Int
	expo.SetUint64(uint64(1) << (twoAdicity - logM))
	g.Exp(root, &expo)
	return g
}
