// Package transcript derives the prover's pseudorandom challenges from a
// Fiat-Shamir transcript.
//
// The protocol's challenges are known in advance (they are a function of the
// configuration, not of the data), so a Challenger is created with the full
// ordered name list and walks it: every Observe binds data to the next
// pending challenge, every Challenge derives it and moves on. The underlying
// engine folds each computed challenge into the next one and refuses
// out-of-order derivation, which enforces the commit-then-challenge ordering
// the protocol's soundness rests on.
package transcript

import (
	"errors"
	"fmt"

	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/fext"
	"golang.org/x/crypto/blake2b"
)

// ErrExhausted is returned when more challenges are requested than were
// registered at construction.
var ErrExhausted = errors.New("transcript: challenge list exhausted")

// Challenger is the single mutable object shared across proving phases. It
// must be driven by one logical owner; no method is safe for concurrent use.
type Challenger struct {
	fs    *fiatshamir.Transcript
	names []string
	next  int
}

// NewChallenger builds a challenger over blake2b-256 for the given ordered
// challenge names.
func NewChallenger(names ...string) *Challenger {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails on oversized keys
		panic(err)
	}
	return &Challenger{
		fs:    fiatshamir.NewTranscript(h, names...),
		names: names,
	}
}

// Observe absorbs data into the transcript, binding it to the next challenge
// to be derived. Multiple observations before a derivation accumulate.
func (c *Challenger) Observe(data []byte) error {
	if c.next >= len(c.names) {
		return ErrExhausted
	}
	if err := c.fs.Bind(c.names[c.next], data); err != nil {
		return fmt.Errorf("transcript: bind %q: %w", c.names[c.next], err)
	}
	return nil
}

// Challenge derives the next challenge as a base field element.
func (c *Challenger) Challenge() (goldilocks.Element, error) {
	var el goldilocks.Element
	b, err := c.digest()
	if err != nil {
		return el, err
	}
	el.SetBytes(b)
	return el, nil
}

// ChallengeExt derives the next challenge as an extension field element: the
// 32-byte digest is split into two halves, each reduced into the base field.
func (c *Challenger) ChallengeExt() (fext.E2, error) {
	var el fext.E2
	b, err := c.digest()
	if err != nil {
		return el, err
	}
	el.SetBytes(b)
	return el, nil
}

// ChallengeBytes derives the next challenge as raw digest bytes; used for
// query-index sampling.
func (c *Challenger) ChallengeBytes() ([]byte, error) {
	return c.digest()
}

func (c *Challenger) digest() ([]byte, error) {
	if c.next >= len(c.names) {
		return nil, ErrExhausted
	}
	b, err := c.fs.ComputeChallenge(c.names[c.next])
	if err != nil {
		return nil, fmt.Errorf("transcript: derive %q: %w", c.names[c.next], err)
	}
	c.next++
	return b, nil
}
