package stark

import (
	"io"

	cbor "github.com/fxamacker/cbor/v2"

	"github.com/consensys/stark/fri"
	"github.com/consensys/stark/merkle"
)

// Proof is the immutable output of a proving run.
type Proof struct {
	TraceCap     merkle.Cap `cbor:"1,keyasint"`
	Openings     OpeningSet `cbor:"2,keyasint"`
	OpeningProof *fri.Proof `cbor:"3,keyasint"`
}

// WriteTo serializes the proof using deterministic CBOR encoding; two runs
// on identical inputs produce byte-identical streams.
func (p *Proof) WriteTo(w io.Writer) (int64, error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	cw := countingWriter{w: w}
	if err := em.NewEncoder(&cw).Encode(p); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// ReadFrom deserializes a proof produced by WriteTo.
func (p *Proof) ReadFrom(r io.Reader) (int64, error) {
	cr := countingReader{r: r}
	if err := cbor.NewDecoder(&cr).Decode(p); err != nil {
		return cr.n, err
	}
	return cr.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
