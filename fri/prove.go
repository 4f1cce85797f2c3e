package fri

import (
	"encoding/binary"
	"errors"
	"math/big"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/fext"
	"github.com/consensys/stark/internal/fft"
	"github.com/consensys/stark/internal/parallel"
	"github.com/consensys/stark/merkle"
	"github.com/consensys/stark/transcript"
	"golang.org/x/crypto/blake2b"
)

// ErrOracleMismatch is returned when the oracles handed to ProveOpenings do
// not live on a common extended domain.
var ErrOracleMismatch = errors.New("fri: oracles must share the extended domain")

// Opening describes one out-of-domain point and the claimed evaluations
// there. Oracles holds indices into the oracle slice given to ProveOpenings;
// Values[k] lists, in commitment order, the evaluations of every polynomial
// of oracle Oracles[k] at Point.
type Opening struct {
	Point   fext.E2
	Oracles []int
	Values  [][]fext.E2
}

// ProveOpenings produces the low-degree opening argument for the given
// claimed evaluations. The caller must already have observed the oracle caps
// and the claimed values into the transcript; the challenges consumed here
// are exactly those listed by ChallengeNames.
func ProveOpenings(oracles []*PolynomialBatch, openings []Opening, ch *transcript.Challenger, params Params) (*Proof, error) {
	if len(oracles) == 0 {
		return nil, ErrNoPolynomials
	}
	extLen := int(oracles[0].ExtendedLen())
	for _, o := range oracles {
		if int(o.ExtendedLen()) != extLen {
			return nil, ErrOracleMismatch
		}
	}
	domain := fft.NewDomain(uint64(extLen))

	alpha, err := ch.ChallengeExt()
	if err != nil {
		return nil, err
	}

	comp := reduceOpenings(oracles, openings, &alpha, domain)

	numFolds := params.NumFoldingRounds(log2(extLen) - params.RateBits)

	// inverses of the coset points for the first half of the current layer;
	// squaring walks them down to the next layer
	xInvs := make([]goldilocks.Element, extLen/2)
	x := domain.CosetShiftInv
	for i := range xInvs {
		xInvs[i] = x
		x.Mul(&x, &domain.GeneratorInv)
	}
	var halfInv goldilocks.Element
	halfInv.SetUint64(2)
	halfInv.Inverse(&halfInv)

	layers := make([][]fext.E2, 0, numFolds)
	trees := make([]*merkle.Tree, 0, numFolds)
	caps := make([]merkle.Cap, 0, numFolds)

	cur := comp
	for r := 0; r < numFolds; r++ {
		h := len(cur) / 2

		// commit the current layer with paired leaves, so one opening
		// authenticates both values of a folding pair
		leaves := make([][]byte, h)
		for i := 0; i < h; i++ {
			leaves[i] = append(cur[i].Marshal(), cur[i+h].Marshal()...)
		}
		tree, err := merkle.NewTree(leaves, params.CapHeight)
		if err != nil {
			return nil, err
		}
		c := tree.Cap()
		if err := ch.Observe(c.Marshal()); err != nil {
			return nil, err
		}
		beta, err := ch.ChallengeExt()
		if err != nil {
			return nil, err
		}

		layers = append(layers, cur)
		trees = append(trees, tree)
		caps = append(caps, c)

		next := make([]fext.E2, h)
		parallel.Execute(h, func(start, end int) {
			var s, d fext.E2
			for i := start; i < end; i++ {
				s.Add(&cur[i], &cur[i+h])
				d.Sub(&cur[i], &cur[i+h])
				d.MulByElement(&d, &xInvs[i])
				d.Mul(&d, &beta)
				s.Add(&s, &d)
				s.MulByElement(&s, &halfInv)
				next[i] = s
			}
		})
		cur = next
		for i := 0; i < h/2; i++ {
			xInvs[i].Mul(&xInvs[i], &xInvs[i])
		}
	}

	finalPoly := finalPolynomial(cur, numFolds, params.RateBits, domain)

	finalBytes := make([]byte, 0, len(finalPoly)*fext.Bytes)
	for i := range finalPoly {
		finalBytes = append(finalBytes, finalPoly[i].Marshal()...)
	}
	if err := ch.Observe(finalBytes); err != nil {
		return nil, err
	}
	seed, err := ch.ChallengeBytes()
	if err != nil {
		return nil, err
	}
	indices := sampleIndices(seed, params.NumQueryRounds, extLen)

	rounds := make([]QueryRound, len(indices))
	for q, idx := range indices {
		initial := make([]BatchOpening, len(oracles))
		for oi, o := range oracles {
			initial[oi] = BatchOpening{
				Row:   o.GetLDEValues(idx),
				Proof: o.Open(idx),
			}
		}
		steps := make([]QueryStep, numFolds)
		i := idx
		for r := 0; r < numFolds; r++ {
			h := len(layers[r]) / 2
			ri := i % h
			steps[r] = QueryStep{
				Evals: [2]fext.E2{layers[r][ri], layers[r][ri+h]},
				Proof: trees[r].Open(ri),
			}
			i = ri
		}
		rounds[q] = QueryRound{Index: idx, InitialRows: initial, Steps: steps}
	}

	return &Proof{
		CommitPhaseCaps: caps,
		FinalPoly:       finalPoly,
		QueryRounds:     rounds,
	}, nil
}

// reduceOpenings evaluates the batched quotient
//
//	sum over openings b, polynomials j of
//	  alpha^w(b,j) · (f_j(x) − y_(b,j)) / (x − z_b)
//
// on the extended domain, with a globally distinct alpha power per
// (opening, polynomial) pair.
func reduceOpenings(oracles []*PolynomialBatch, openings []Opening, alpha *fext.E2, domain *fft.Domain) []fext.E2 {
	extLen := int(domain.Cardinality)

	total := 0
	for _, op := range openings {
		for _, oi := range op.Oracles {
			total += oracles[oi].NumPolynomials()
		}
	}
	alphaPows := make([]fext.E2, total)
	var pow fext.E2
	pow.SetOne()
	for i := range alphaPows {
		alphaPows[i] = pow
		pow.Mul(&pow, alpha)
	}

	xs := make([]goldilocks.Element, extLen)
	pt := domain.CosetShift
	for i := range xs {
		xs[i] = pt
		pt.Mul(&pt, &domain.Generator)
	}

	comp := make([]fext.E2, extLen)
	parallel.Execute(extLen, func(start, end int) {
		var x, t, d, sum, acc fext.E2
		for i := start; i < end; i++ {
			x.SetFromBase(&xs[i])
			acc.SetZero()
			w := 0
			for _, op := range openings {
				sum.SetZero()
				for k, oi := range op.Oracles {
					row := oracles[oi].GetLDEValues(i)
					ys := op.Values[k]
					for j := range row {
						t.SetFromBase(&row[j])
						t.Sub(&t, &ys[j])
						t.Mul(&t, &alphaPows[w])
						sum.Add(&sum, &t)
						w++
					}
				}
				d.Sub(&x, &op.Point)
				d.Inverse(&d)
				sum.Mul(&sum, &d)
				acc.Add(&acc, &sum)
			}
			comp[i] = acc
		}
	})
	return comp
}

// finalPolynomial interpolates the last folded layer and trims it back to
// its degree bound. After numFolds halvings the layer lives on the coset
// shifted by shift^(2^numFolds), and its rate is unchanged, so only the
// first len/2^rateBits coefficients carry the polynomial.
func finalPolynomial(layer []fext.E2, numFolds, rateBits int, domain *fft.Domain) []fext.E2 {
	n := uint64(len(layer))
	gInv := fft.GeneratorOfSize(n)
	gInv.Inverse(&gInv)

	shiftInv := domain.CosetShiftInv
	for k := 0; k < numFolds; k++ {
		shiftInv.Mul(&shiftInv, &shiftInv)
	}

	coeffs := make([]fext.E2, n)
	copy(coeffs, layer)
	extButterflies(coeffs, gInv)

	var nInv goldilocks.Element
	nInv.SetUint64(n)
	nInv.Inverse(&nInv)
	var scale goldilocks.Element
	scale.SetOne()
	for i := range coeffs {
		coeffs[i].MulByElement(&coeffs[i], &nInv)
		coeffs[i].MulByElement(&coeffs[i], &scale)
		scale.Mul(&scale, &shiftInv)
	}

	return coeffs[:n>>rateBits]
}

// extButterflies is the extension field counterpart of the base field
// transform: bit-reverse permutation, then butterfly stages with base field
// twiddles.
func extButterflies(a []fext.E2, g goldilocks.Element) {
	n := uint64(len(a))
	for i, irev := range bitReversePerm(n) {
		if irev > uint64(i) {
			a[i], a[irev] = a[irev], a[i]
		}
	}

	var expo big.Int
	for size := uint64(2); size <= n; size <<= 1 {
		half := size >> 1

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
				var t fext.E2
				t.MulByElement(&a[start+half+k], &twiddles[k])
				a[start+half+k].Sub(&a[start+k], &t)
				a[start+k].Add(&a[start+k], &t)
			}
		}
	}
}

func bitReversePerm(n uint64) []uint64 {
	shift := uint64(64 - bits.TrailingZeros64(n))
	perm := make([]uint64, n)
	for i := uint64(0); i < n; i++ {
		perm[i] = bits.Reverse64(i) >> shift
	}
	return perm
}

func log2(n int) int {
	return bits.TrailingZeros64(uint64(n))
}

// sampleIndices expands a transcript digest into count distinct domain
// indices. Duplicates are skipped, so identical seeds always yield the same
// index set.
func sampleIndices(seed []byte, count, extLen int) []int {
	if count > extLen {
		count = extLen
	}
	indices := make([]int, 0, count)
	seen := bitset.New(uint(extLen))

	var ctr uint64
	for len(indices) < count {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], ctr)
		digest := blake2b.Sum256(append(append([]byte{}, seed...), buf[:]...))
		for off := 0; off+8 <= len(digest) && len(indices) < count; off += 8 {
			idx := int(binary.BigEndian.Uint64(digest[off:off+8]) % uint64(extLen))
			if seen.Test(uint(idx)) {
				continue
			}
			seen.Set(uint(idx))
			indices = append(indices, idx)
		}
		ctr++
	}
	return indices
}
