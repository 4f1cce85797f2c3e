package fri

import (
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/fext"
	"github.com/consensys/stark/internal/fft"
	"github.com/stretchr/testify/require"
)

func randomColumns(t *testing.T, nbPolys, n int) [][]goldilocks.Element {
	t.Helper()
	cols := make([][]goldilocks.Element, nbPolys)
	for j := range cols {
		cols[j] = make([]goldilocks.Element, n)
		for i := range cols[j] {
			_, err := cols[j][i].SetRandom()
			require.NoError(t, err)
		}
	}
	return cols
}

func TestPolynomialBatchValidation(t *testing.T) {
	_, err := NewPolynomialBatchFromValues(nil, 2, 1)
	require.ErrorIs(t, err, ErrNoPolynomials)

	cols := randomColumns(t, 2, 8)
	cols[1] = cols[1][:7]
	_, err = NewPolynomialBatchFromValues(cols, 2, 1)
	require.ErrorIs(t, err, ErrSizeMismatch)

	_, err = NewPolynomialBatchFromValues(randomColumns(t, 1, 6), 2, 1)
	require.ErrorIs(t, err, ErrNotPowerOfTwo)
}

func TestPolynomialBatchDeterminism(t *testing.T) {
	cols := randomColumns(t, 3, 16)
	b1, err := NewPolynomialBatchFromValues(cols, 2, 1)
	require.NoError(t, err)
	b2, err := NewPolynomialBatchFromValues(cols, 2, 1)
	require.NoError(t, err)
	require.Equal(t, b1.Cap(), b2.Cap())
}

// The LDE row at index i must hold, for every column, the value of that
// column's interpolant at the i-th coset point.
func TestPolynomialBatchLDERows(t *testing.T) {
	const n, rateBits = 8, 2
	cols := randomColumns(t, 2, n)
	b, err := NewPolynomialBatchFromValues(cols, rateBits, 1)
	require.NoError(t, err)

	// recompute one column's LDE independently
	lde := fft.LDEOnCoset(cols[1], rateBits)
	for i := 0; i < n<<rateBits; i++ {
		row := b.GetLDEValues(i)
		require.Len(t, row, 2)
		require.True(t, lde[i].Equal(&row[1]), "index %d", i)
	}
}

// Evaluating at an embedded native-domain point must reproduce the original
// column values.
func TestEvalsAtExtOnDomain(t *testing.T) {
	const n = 8
	cols := randomColumns(t, 3, n)
	b, err := NewPolynomialBatchFromValues(cols, 2, 1)
	require.NoError(t, err)

	g := fft.GeneratorOfSize(n)
	x := goldilocks.One()
	for i := 0; i < n; i++ {
		var zeta fext.E2
		zeta.SetFromBase(&x)
		evals := b.EvalsAtExt(&zeta)
		for j := range cols {
			require.True(t, evals[j].A1.IsZero())
			require.True(t, evals[j].A0.Equal(&cols[j][i]), "poly %d row %d", j, i)
		}
		x.Mul(&x, &g)
	}
}

func TestPolynomialBatchOpen(t *testing.T) {
	const n, rateBits, capHeight = 8, 2, 2
	cols := randomColumns(t, 2, n)
	b, err := NewPolynomialBatchFromValues(cols, rateBits, capHeight)
	require.NoError(t, err)

	// every row opening must verify against the cap
	c := b.Cap()
	for i := 0; i < n<<rateBits; i++ {
		row := b.GetLDEValues(i)
		require.NoError(t, verifyRow(row, i, b.Open(i), c))
	}
}

func TestFromCoeffsMatchesFromValues(t *testing.T) {
	const n, rateBits = 8, 2
	cols := randomColumns(t, 2, n)

	fromValues, err := NewPolynomialBatchFromValues(cols, rateBits, 1)
	require.NoError(t, err)

	small := fft.NewDomain(n)
	coeffs := make([][]goldilocks.Element, len(cols))
	for j := range cols {
		coeffs[j] = make([]goldilocks.Element, n)
		copy(coeffs[j], cols[j])
		small.FFTInverse(coeffs[j], false)
	}
	fromCoeffs, err := NewPolynomialBatchFromCoeffs(coeffs, rateBits, 1)
	require.NoError(t, err)

	require.Equal(t, fromValues.Cap(), fromCoeffs.Cap())
}
