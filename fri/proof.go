package fri

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/fext"
	"github.com/consensys/stark/merkle"
)

// BatchOpening authenticates one row of an oracle's extended values.
type BatchOpening struct {
	Row   []goldilocks.Element `cbor:"1,keyasint"`
	Proof merkle.Proof         `cbor:"2,keyasint"`
}

// QueryStep authenticates the folding pair of one commit-phase layer: the
// values at a reduced index and its antipode, plus the path to the layer cap.
type QueryStep struct {
	Evals [2]fext.E2   `cbor:"1,keyasint"`
	Proof merkle.Proof `cbor:"2,keyasint"`
}

// QueryRound is the spot-check at one sampled domain index: the rows of all
// initial oracles there, and one step per folding layer.
type QueryRound struct {
	Index       int            `cbor:"1,keyasint"`
	InitialRows []BatchOpening `cbor:"2,keyasint"`
	Steps       []QueryStep    `cbor:"3,keyasint"`
}

// Proof is the low-degree opening argument: the caps of every folded layer,
// the coefficients of the final polynomial, and the sampled query rounds.
type Proof struct {
	CommitPhaseCaps []merkle.Cap `cbor:"1,keyasint"`
	FinalPoly       []fext.E2    `cbor:"2,keyasint"`
	QueryRounds     []QueryRound `cbor:"3,keyasint"`
}
