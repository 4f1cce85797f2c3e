package fft

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// ZeroPolyOnCoset holds the precomputed inverses of the vanishing polynomial
// Z_H(x) = x^n - 1 of the native domain H, evaluated on the LDE coset
// shift·K where K is the domain of size n·2^rateBits.
//
// On the coset, Z_H(shift·w^i) = shift^n·(w^n)^i - 1 and w^n has order
// 2^rateBits, so the table is periodic with that period.
type ZeroPolyOnCoset struct {
	rate     uint64
	evalsInv []goldilocks.Element
}

// NewZeroPolyOnCoset precomputes the inverse table for a native domain of
// size 2^degreeBits extended by rateBits.
func NewZeroPolyOnCoset(degreeBits, rateBits int) *ZeroPolyOnCoset {
	n := uint64(1) << degreeBits
	rate := uint64(1) << rateBits

	wExt := GeneratorOfSize(n * rate)
	var shift goldilocks.Element
	shift.SetUint64(multiplicativeGen)

	var bn big.Int
	bn.SetUint64(n)
	var shiftN, wExtN goldilocks.Element
	shiftN.Exp(shift, &bn)
	wExtN.Exp(wExt, &bn)

	var one goldilocks.Element
	one.SetOne()

	evals := make([]goldilocks.Element, rate)
	acc := shiftN
	for i := uint64(0); i < rate; i++ {
		evals[i].Sub(&acc, &one)
		acc.Mul(&acc, &wExtN)
	}
	// shift is not a root of unity, so Z_H never vanishes on the coset
	evals = goldilocks.BatchInvert(evals)

	return &ZeroPolyOnCoset{rate: rate, evalsInv: evals}
}

// EvalInverse returns 1/Z_H at the i-th coset point.
func (z *ZeroPolyOnCoset) EvalInverse(i int) *goldilocks.Element {
	return &z.evalsInv[uint64(i)&(z.rate-1)]
}
