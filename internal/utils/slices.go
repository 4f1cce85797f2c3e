package utils

import (
	"math/bits"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// Transpose returns the column-major view of a row-major matrix. All rows
// must have the same length.
func Transpose(rows [][]goldilocks.Element) [][]goldilocks.Element {
	if len(rows) == 0 {
		return nil
	}
	cols := make([][]goldilocks.Element, len(rows[0]))
	for j := range cols {
		cols[j] = make([]goldilocks.Element, len(rows))
		for i := range rows {
			cols[j][i] = rows[i][j]
		}
	}
	return cols
}

// IsPowerOfTwo returns true if n == 2^k for some k >= 0.
func IsPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// Log2Strict returns k such that n == 2^k, and false if n is not a power of
// two.
func Log2Strict(n uint64) (int, bool) {
	if !IsPowerOfTwo(n) {
		return 0, false
	}
	return bits.TrailingZeros64(n), true
}
