package fft

import "github.com/consensys/gnark-crypto/field/goldilocks"

// LDEOnCoset extends a value-form polynomial onto the shifted coset of the
// domain 2^rateBits times larger: interpolate over the native domain, then
// evaluate the same polynomial on the big coset. The input is not modified.
func LDEOnCoset(values []goldilocks.Element, rateBits int) []goldilocks.Element {
	n := uint64(len(values))
	small := NewDomain(n)
	big := NewDomain(n << rateBits)

	out := make([]goldilocks.Element, n<<rateBits)
	copy(out, values)
	small.FFTInverse(out[:n], false)
	big.FFT(out, true)
	return out
}
