package fri

import (
	"errors"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/fext"
	"github.com/consensys/stark/internal/fft"
	"github.com/consensys/stark/internal/utils"
	"github.com/consensys/stark/merkle"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoPolynomials is returned when committing an empty batch.
	ErrNoPolynomials = errors.New("fri: no polynomials to commit")
	// ErrSizeMismatch is returned when committed polynomials have unequal lengths.
	ErrSizeMismatch = errors.New("fri: polynomials must all have the same length")
	// ErrNotPowerOfTwo is returned when the polynomial length is not a power of two.
	ErrNotPowerOfTwo = errors.New("fri: polynomial length must be a power of two")
)

// PolynomialBatch commits to a batch of polynomials of a common degree
// bound: each is extended onto a coset domain 2^rateBits times larger and
// the concatenated rows of extended values are committed in one Merkle tree.
// Read-only after construction; safe for concurrent readers.
type PolynomialBatch struct {
	rateBits  int
	capHeight int
	degree    uint64

	// coefficient form, one slice per polynomial, each of length degree
	coeffs [][]goldilocks.Element

	// ldeRows[i][j] is polynomial j evaluated at the i-th coset point
	ldeRows [][]goldilocks.Element

	tree *merkle.Tree
}

// NewPolynomialBatchFromValues commits polynomials given in value form over
// the native domain. Deterministic given identical input and parameters.
func NewPolynomialBatchFromValues(values [][]goldilocks.Element, rateBits, capHeight int) (*PolynomialBatch, error) {
	if err := validateColumns(values); err != nil {
		return nil, err
	}

	n := uint64(len(values[0]))
	small := fft.NewDomain(n)

	coeffs := make([][]goldilocks.Element, len(values))
	var g errgroup.Group
	for j := range values {
		g.Go(func() error {
			c := make([]goldilocks.Element, n)
			copy(c, values[j])
			small.FFTInverse(c, false)
			coeffs[j] = c
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers cannot fail

	return NewPolynomialBatchFromCoeffs(coeffs, rateBits, capHeight)
}

// NewPolynomialBatchFromCoeffs commits polynomials given in coefficient
// form; each coefficient slice must have the same power-of-two length, which
// becomes the degree bound.
func NewPolynomialBatchFromCoeffs(coeffs [][]goldilocks.Element, rateBits, capHeight int) (*PolynomialBatch, error) {
	if err := validateColumns(coeffs); err != nil {
		return nil, err
	}

	n := uint64(len(coeffs[0]))
	extLen := n << rateBits
	big := fft.NewDomain(extLen)

	b := &PolynomialBatch{
		rateBits:  rateBits,
		capHeight: capHeight,
		degree:    n,
		coeffs:    coeffs,
	}

	// low-degree extension of every polynomial onto the coset
	ldeCols := make([][]goldilocks.Element, len(coeffs))
	var g errgroup.Group
	for j := range coeffs {
		g.Go(func() error {
			c := make([]goldilocks.Element, extLen)
			copy(c, coeffs[j])
			big.FFT(c, true)
			ldeCols[j] = c
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers cannot fail

	b.ldeRows = utils.Transpose(ldeCols)

	leaves := make([][]byte, extLen)
	for i := range b.ldeRows {
		leaves[i] = marshalRow(b.ldeRows[i])
	}
	tree, err := merkle.NewTree(leaves, capHeight)
	if err != nil {
		return nil, err
	}
	b.tree = tree

	return b, nil
}

func validateColumns(cols [][]goldilocks.Element) error {
	if len(cols) == 0 {
		return ErrNoPolynomials
	}
	n := uint64(len(cols[0]))
	if !utils.IsPowerOfTwo(n) {
		return ErrNotPowerOfTwo
	}
	for _, c := range cols {
		if uint64(len(c)) != n {
			return ErrSizeMismatch
		}
	}
	return nil
}

// Degree returns the per-polynomial degree bound (the native domain size).
func (b *PolynomialBatch) Degree() uint64 { return b.degree }

// ExtendedLen returns the size of the LDE domain.
func (b *PolynomialBatch) ExtendedLen() uint64 { return b.degree << b.rateBits }

// NumPolynomials returns the number of committed polynomials.
func (b *PolynomialBatch) NumPolynomials() int { return len(b.coeffs) }

// Cap returns the commitment digest set.
func (b *PolynomialBatch) Cap() merkle.Cap { return b.tree.Cap() }

// GetLDEValues returns the values of all committed polynomials at the i-th
// point of the extended domain. The returned slice is shared; callers must
// not mutate it.
func (b *PolynomialBatch) GetLDEValues(i int) []goldilocks.Element {
	return b.ldeRows[i]
}

// EvalsAtExt evaluates every committed polynomial at an extension field
// point (Horner on the base field coefficients).
func (b *PolynomialBatch) EvalsAtExt(zeta *fext.E2) []fext.E2 {
	out := make([]fext.E2, len(b.coeffs))
	for j, c := range b.coeffs {
		var acc fext.E2
		for i := len(c) - 1; i >= 0; i-- {
			acc.Mul(&acc, zeta)
			acc.A0.Add(&acc.A0, &c[i])
		}
		out[j] = acc
	}
	return out
}

// Open returns the Merkle authentication path for the i-th row of extended
// values.
func (b *PolynomialBatch) Open(i int) merkle.Proof {
	return b.tree.Open(i)
}

func marshalRow(row []goldilocks.Element) []byte {
	out := make([]byte, 0, len(row)*goldilocks.Bytes)
	for i := range row {
		out = append(out, row[i].Marshal()...)
	}
	return out
}
