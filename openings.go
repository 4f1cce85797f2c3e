package stark

import (
	"github.com/consensys/stark/fext"
	"github.com/consensys/stark/fri"
)

// OpeningSet is the evaluation claim the verifier re-checks pointwise: the
// trace polynomials at zeta and at g·zeta, and the quotient chunks at zeta.
type OpeningSet struct {
	TraceLocal     []fext.E2 `cbor:"1,keyasint"`
	TraceNext      []fext.E2 `cbor:"2,keyasint"`
	QuotientChunks []fext.E2 `cbor:"3,keyasint"`
}

func newOpeningSet(zeta, gZeta *fext.E2, trace, quotient *fri.PolynomialBatch) OpeningSet {
	return OpeningSet{
		TraceLocal:     trace.EvalsAtExt(zeta),
		TraceNext:      trace.EvalsAtExt(gZeta),
		QuotientChunks: quotient.EvalsAtExt(zeta),
	}
}

// Marshal serializes the opening set in a fixed order for transcript
// absorption.
func (o *OpeningSet) Marshal() []byte {
	out := make([]byte, 0, (len(o.TraceLocal)+len(o.TraceNext)+len(o.QuotientChunks))*fext.Bytes)
	for i := range o.TraceLocal {
		out = append(out, o.TraceLocal[i].Marshal()...)
	}
	for i := range o.TraceNext {
		out = append(out, o.TraceNext[i].Marshal()...)
	}
	for i := range o.QuotientChunks {
		out = append(out, o.QuotientChunks[i].Marshal()...)
	}
	return out
}
