package stark

import "errors"

var (
	// ErrInvalidConfig is returned by Config.Validate and by Prove when the
	// configuration parameters are inconsistent.
	ErrInvalidConfig = errors.New("stark: invalid configuration")

	// ErrInvalidTrace is returned when the trace shape does not match the
	// constraint capability or the domain requirements.
	ErrInvalidTrace = errors.New("stark: invalid trace")

	// ErrDegenerateChallenge is returned when the out-of-domain challenge
	// lands inside the trace domain, where an opening would leak trace
	// values. Recoverable: re-salt the transcript (Config.TranscriptSeed)
	// and run again.
	ErrDegenerateChallenge = errors.New("stark: opening point lies in the trace domain")

	// ErrNonZeroRemainder is returned when the accumulated constraint
	// polynomial is not divisible by the vanishing polynomial of the trace
	// domain. Fatal: the trace violates a constraint, or the constraint
	// capability is buggy.
	ErrNonZeroRemainder = errors.New("stark: constraint accumulator is not divisible by the vanishing polynomial")
)
