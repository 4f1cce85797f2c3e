package stark

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/air"
	"github.com/consensys/stark/fri"
	"github.com/consensys/stark/internal/fft"
	"github.com/consensys/stark/internal/parallel"
)

// quotientChunks evaluates the constraint accumulator of every combination
// challenge over the extended coset, divides it pointwise by the vanishing
// polynomial of the trace domain, and returns the coefficient-form quotients
// split into degree-bound chunks ready for commitment.
//
// The "next row" of point i is the point i + 2^rateBits further along the
// coset, i.e. the evaluation of the trace polynomials at g·x where g
// generates the trace domain; it wraps cyclically, so the last trace row
// sees the first row as its successor.
func quotientChunks(
	a air.AIR,
	trace *fri.PolynomialBatch,
	publicInputs []goldilocks.Element,
	alphas []goldilocks.Element,
	degreeBits, rateBits int,
) ([][]goldilocks.Element, error) {
	degree := uint64(1) << degreeBits
	extLen := degree << rateBits
	nextStep := uint64(1) << rateBits
	big := fft.NewDomain(extLen)

	zh := fft.NewZeroPolyOnCoset(degreeBits, rateBits)

	lagrangeFirst := make([]goldilocks.Element, degree)
	lagrangeFirst[0].SetOne()
	lagrangeFirst = fft.LDEOnCoset(lagrangeFirst, rateBits)

	lagrangeLast := make([]goldilocks.Element, degree)
	lagrangeLast[degree-1].SetOne()
	lagrangeLast = fft.LDEOnCoset(lagrangeLast, rateBits)

	// z_last(x) = x − g^{degree−1}; g^{degree−1} = g^{-1}
	lastRowPoint := fft.GeneratorOfSize(degree)
	lastRowPoint.Inverse(&lastRowPoint)
	zLast := make([]goldilocks.Element, extLen)
	x := big.CosetShift
	for i := range zLast {
		zLast[i].Sub(&x, &lastRowPoint)
		x.Mul(&x, &big.Generator)
	}

	quotients := make([][]goldilocks.Element, len(alphas))
	for c := range quotients {
		quotients[c] = make([]goldilocks.Element, extLen)
	}

	parallel.Execute(int(extLen), func(start, end int) {
		alg := air.GF{}
		for i := start; i < end; i++ {
			next := (uint64(i) + nextStep) & (extLen - 1)
			frame := air.Frame[goldilocks.Element]{
				Local:        trace.GetLDEValues(i),
				Next:         trace.GetLDEValues(int(next)),
				PublicInputs: publicInputs,
			}
			for c := range alphas {
				cc := air.NewConsumer[goldilocks.Element](alg, alphas[c], lagrangeFirst[i], lagrangeLast[i], zLast[i])
				a.EvalBase(frame, cc)
				acc := cc.Accumulator()
				quotients[c][i].Mul(&acc, zh.EvalInverse(i))
			}
		}
	})

	chunks := make([][]goldilocks.Element, 0, len(alphas)<<rateBits)
	for c := range quotients {
		q := quotients[c]
		big.FFTInverse(q, true)

		trimmed := trimZeros(q)
		if uint64(len(trimmed)) > extLen-degree {
			return nil, ErrNonZeroRemainder
		}

		padded := make([]goldilocks.Element, extLen)
		copy(padded, trimmed)
		for j := uint64(0); j < extLen; j += degree {
			chunks = append(chunks, padded[j:j+degree])
		}
	}
	return chunks, nil
}

// trimZeros drops the exact-zero coefficient tail. Field arithmetic is
// exact, so an honest division leaves literal zeros past the quotient
// degree.
func trimZeros(coeffs []goldilocks.Element) []goldilocks.Element {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	return coeffs[:n]
}
