package stark

import (
	"fmt"

	"github.com/consensys/stark/fri"
)

// Config carries the public parameters of a proving run. Prover and verifier
// must agree on every field; the trace height (degree) is derived from the
// trace itself.
type Config struct {
	// RateBits is the log2 blowup of the low-degree extension. Constraints
	// of algebraic degree up to 2^RateBits are supported.
	RateBits int

	// CapHeight is the Merkle cap height of every commitment.
	CapHeight int

	// NumChallenges is the number of independent constraint-combination
	// challenges, each yielding its own quotient polynomial.
	NumChallenges int

	// NumQueryRounds is the number of FRI spot checks.
	NumQueryRounds int

	// MaxFinalPolyDegreeBits bounds the degree of the polynomial the FRI
	// folding phase sends in the clear.
	MaxFinalPolyDegreeBits int

	// TranscriptSeed, when non-empty, is bound to the first transcript
	// challenge. Re-salting it is the recovery path after
	// ErrDegenerateChallenge.
	TranscriptSeed []byte
}

// DefaultConfig returns the standard parameter set: blowup 8, 2 combination
// challenges, 28 query rounds.
func DefaultConfig() Config {
	return Config{
		RateBits:               3,
		CapHeight:              4,
		NumChallenges:          2,
		NumQueryRounds:         28,
		MaxFinalPolyDegreeBits: 3,
	}
}

// Validate checks internal consistency of the parameters. Trace-dependent
// checks (cap height vs. domain size) happen in Prove.
func (cfg Config) Validate() error {
	if cfg.RateBits < 1 {
		return fmt.Errorf("%w: rate bits must be >= 1", ErrInvalidConfig)
	}
	if cfg.CapHeight < 0 {
		return fmt.Errorf("%w: negative cap height", ErrInvalidConfig)
	}
	if cfg.NumChallenges < 1 {
		return fmt.Errorf("%w: need at least one combination challenge", ErrInvalidConfig)
	}
	if cfg.NumQueryRounds < 1 {
		return fmt.Errorf("%w: need at least one query round", ErrInvalidConfig)
	}
	if cfg.MaxFinalPolyDegreeBits < 0 {
		return fmt.Errorf("%w: negative final polynomial degree", ErrInvalidConfig)
	}
	if cfg.CapHeight > cfg.MaxFinalPolyDegreeBits+cfg.RateBits {
		// the smallest folded layer tree must still accommodate the cap
		return fmt.Errorf("%w: cap height %d exceeds smallest folding layer height %d",
			ErrInvalidConfig, cfg.CapHeight, cfg.MaxFinalPolyDegreeBits+cfg.RateBits)
	}
	return nil
}

func (cfg Config) friParams() fri.Params {
	return fri.Params{
		RateBits:               cfg.RateBits,
		CapHeight:              cfg.CapHeight,
		NumQueryRounds:         cfg.NumQueryRounds,
		MaxFinalPolyDegreeBits: cfg.MaxFinalPolyDegreeBits,
	}
}

// challengeNames lists, in derivation order, every transcript challenge a
// proving run consumes for a trace of height 2^degreeBits.
func (cfg Config) challengeNames(degreeBits int) []string {
	names := make([]string, 0, cfg.NumChallenges+2)
	for i := 0; i < cfg.NumChallenges; i++ {
		names = append(names, fmt.Sprintf("alpha.%d", i))
	}
	names = append(names, "zeta")
	return append(names, cfg.friParams().ChallengeNames(degreeBits)...)
}
