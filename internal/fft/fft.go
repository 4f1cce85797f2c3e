package fft

import (
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// FFT transforms a from coefficient form to value form, in place, in natural
// order. If coset is true the polynomial is evaluated on the shifted coset
// shift·H instead of H. len(a) must equal the domain cardinality.
func (d *Domain) FFT(a []goldilocks.Element, coset bool) {
	if uint64(len(a)) != d.Cardinality {
		panic("fft: size mismatch")
	}
	if coset {
		scaleByPowers(a, d.CosetShift)
	}
	butterflies(a, d.Generator)
}

// FFTInverse transforms a from value form back to coefficient form, in
// place. coset must match the flag the values were produced with.
func (d *Domain) FFTInverse(a []goldilocks.Element, coset bool) {
	if uint64(len(a)) != d.Cardinality {
		panic("fft: size mismatch")
	}
	butterflies(a, d.GeneratorInv)
	for i := range a {
		a[i].Mul(&a[i], &d.CardinalityInv)
	}
	if coset {
		scaleByPowers(a, d.CosetShiftInv)
	}
}

// butterflies runs an in-place decimation-in-time transform: bit-reverse
// permutation first, then log2(n) butterfly stages with generator g.
func butterflies(a []goldilocks.Element, g goldilocks.Element) {
	n := uint64(len(a))
	BitReverse(a)

	var expo big.Int
	for size := uint64(2); size <= n; size <<= 1 {
		half := size >> 1

		// twiddles for this stage: wm^0 .. wm^(half-1), wm = g^(n/size)
		var wm goldilocks.Element
		expo.SetUint64(n / size)
		wm.Exp(g, &expo)
		twiddles := make([]goldilocks.Element, half)
		twiddles[0].SetOne()
		for k := uint64(1); k < half; k++ {
			twiddles[k].Mul(&twiddles[k-1], &wm)
		}

		for start := uint64(0); start < n; start += size {
			for k := uint64(0); k < half; k++ {
				var t goldilocks.Element
				t.Mul(&a[start+half+k], &twiddles[k])
				a[start+half+k].Sub(&a[start+k], &t)
				a[start+k].Add(&a[start+k], &t)
			}
		}
	}
}

// BitReverse permutes a by the bit-reverse permutation on indices. len(a)
// must be a power of two.
func BitReverse(a []goldilocks.Element) {
	n := uint64(len(a))
	nn := uint64(64 - bits.TrailingZeros64(n))
	for i := uint64(0); i < n; i++ {
		irev := bits.Reverse64(i) >> nn
		if irev > i {
			a[i], a[irev] = a[irev], a[i]
		}
	}
}

// scaleByPowers multiplies a[i] by s^i.
func scaleByPowers(a []goldilocks.Element, s goldilocks.Element) {
	var acc goldilocks.Element
	acc.SetOne()
	for i := range a {
		a[i].Mul(&a[i], &acc)
		acc.Mul(&acc, &s)
	}
}
