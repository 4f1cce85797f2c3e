package stark

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/air"
	"github.com/consensys/stark/fext"
	"github.com/consensys/stark/fri"
	"github.com/consensys/stark/internal/fft"
	"github.com/consensys/stark/internal/utils"
	"github.com/consensys/stark/logger"
	"github.com/consensys/stark/transcript"
)

// Prove generates a proof that the trace satisfies the constraint
// capability.
//
// The trace is column-major: trace[j] is the j-th column, one entry per
// step; all columns must share a power-of-two height. The run is
// all-or-nothing, a proof is produced in full or not at all. On
// ErrDegenerateChallenge the caller may re-salt cfg.TranscriptSeed and run
// again.
func Prove(a air.AIR, trace [][]goldilocks.Element, publicInputs []goldilocks.Element, cfg Config) (*Proof, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(trace) != a.NumColumns() {
		return nil, fmt.Errorf("%w: got %d columns, capability expects %d", ErrInvalidTrace, len(trace), a.NumColumns())
	}
	if len(publicInputs) != a.NumPublicInputs() {
		return nil, fmt.Errorf("%w: got %d public inputs, capability expects %d", ErrInvalidTrace, len(publicInputs), a.NumPublicInputs())
	}
	degree := uint64(len(trace[0]))
	degreeBits, ok := utils.Log2Strict(degree)
	if !ok {
		return nil, fmt.Errorf("%w: trace height %d is not a power of two", ErrInvalidTrace, degree)
	}
	for j := range trace {
		if uint64(len(trace[j])) != degree {
			return nil, fmt.Errorf("%w: column %d has %d rows, want %d", ErrInvalidTrace, j, len(trace[j]), degree)
		}
	}
	if cfg.CapHeight > degreeBits+cfg.RateBits {
		return nil, fmt.Errorf("%w: cap height %d exceeds commitment tree height %d",
			ErrInvalidConfig, cfg.CapHeight, degreeBits+cfg.RateBits)
	}

	log := logger.Logger().With().
		Str("backend", "stark").
		Int("degreeBits", degreeBits).
		Int("columns", len(trace)).
		Logger()

	ch := transcript.NewChallenger(cfg.challengeNames(degreeBits)...)
	if len(cfg.TranscriptSeed) > 0 {
		if err := ch.Observe(cfg.TranscriptSeed); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	traceOracle, err := fri.NewPolynomialBatchFromValues(trace, cfg.RateBits, cfg.CapHeight)
	if err != nil {
		return nil, fmt.Errorf("commit trace: %w", err)
	}
	log.Debug().Dur("took", time.Since(start)).Msg("trace committed")

	traceCap := traceOracle.Cap()
	if err := ch.Observe(traceCap.Marshal()); err != nil {
		return nil, err
	}
	alphas := make([]goldilocks.Element, cfg.NumChallenges)
	for i := range alphas {
		if alphas[i], err = ch.Challenge(); err != nil {
			return nil, err
		}
	}

	start = time.Now()
	chunks, err := quotientChunks(a, traceOracle, publicInputs, alphas, degreeBits, cfg.RateBits)
	if err != nil {
		return nil, err
	}
	quotientOracle, err := fri.NewPolynomialBatchFromCoeffs(chunks, cfg.RateBits, cfg.CapHeight)
	if err != nil {
		return nil, fmt.Errorf("commit quotient: %w", err)
	}
	log.Debug().Dur("took", time.Since(start)).Msg("quotient committed")

	if err := ch.Observe(quotientOracle.Cap().Marshal()); err != nil {
		return nil, err
	}
	zeta, err := ch.ChallengeExt()
	if err != nil {
		return nil, err
	}

	// zeta and g·zeta must stay clear of the trace domain, or the openings
	// would leak trace values; (g·zeta)^n = zeta^n, so checking zeta covers
	// both.
	if isDegenerate(&zeta, degreeBits) {
		return nil, ErrDegenerateChallenge
	}

	g := fft.GeneratorOfSize(degree)
	var gZeta fext.E2
	gZeta.MulByElement(&zeta, &g)

	openings := newOpeningSet(&zeta, &gZeta, traceOracle, quotientOracle)
	if err := ch.Observe(openings.Marshal()); err != nil {
		return nil, err
	}

	start = time.Now()
	friProof, err := fri.ProveOpenings(
		[]*fri.PolynomialBatch{traceOracle, quotientOracle},
		[]fri.Opening{
			{Point: zeta, Oracles: []int{0, 1}, Values: [][]fext.E2{openings.TraceLocal, openings.QuotientChunks}},
			{Point: gZeta, Oracles: []int{0}, Values: [][]fext.E2{openings.TraceNext}},
		},
		ch, cfg.friParams(),
	)
	if err != nil {
		return nil, fmt.Errorf("opening proof: %w", err)
	}
	log.Debug().Dur("took", time.Since(start)).Msg("openings proved")

	return &Proof{
		TraceCap:     traceCap,
		Openings:     openings,
		OpeningProof: friProof,
	}, nil
}

// isDegenerate reports whether zeta is a 2^degreeBits-th root of unity, i.e.
// lies in the embedded trace domain.
func isDegenerate(zeta *fext.E2, degreeBits int) bool {
	var zn fext.E2
	zn.ExpPow2(zeta, degreeBits)
	return zn.IsOne()
}
