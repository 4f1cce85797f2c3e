// Package fri implements the polynomial commitment scheme the prover builds
// on: batches of polynomials are committed through Merkle caps over their
// low-degree extensions, and claimed out-of-domain evaluations are backed by
// a fold-and-query low-degree argument on the batched difference quotient.
package fri

import "fmt"

// Params fixes the shape of the opening argument. The same values must be
// used by the committing and opening side.
type Params struct {
	// RateBits is the log2 blowup of the evaluation domain.
	RateBits int

	// CapHeight is the Merkle cap height used for every commit-phase layer.
	// It must not exceed the height of the smallest layer tree, i.e.
	// MaxFinalPolyDegreeBits + RateBits.
	CapHeight int

	// NumQueryRounds is the number of spot-check indices sampled after the
	// folding phase.
	NumQueryRounds int

	// MaxFinalPolyDegreeBits bounds the degree of the final polynomial sent
	// in the clear; folding stops once the layer's degree bound reaches
	// 2^MaxFinalPolyDegreeBits.
	MaxFinalPolyDegreeBits int
}

// NumFoldingRounds returns how many halving rounds the argument performs for
// a codeword of degree bound 2^degreeBits.
func (p Params) NumFoldingRounds(degreeBits int) int {
	n := degreeBits - p.MaxFinalPolyDegreeBits
	if n < 0 {
		return 0
	}
	return n
}

// ChallengeNames returns, in consumption order, the transcript challenges
// ProveOpenings derives. Callers registering a full protocol transcript
// append these after their own challenge names.
func (p Params) ChallengeNames(degreeBits int) []string {
	names := []string{"fri.alpha"}
	for r := 0; r < p.NumFoldingRounds(degreeBits); r++ {
		names = append(names, fmt.Sprintf("fri.beta.%d", r))
	}
	return append(names, "fri.queries")
}
