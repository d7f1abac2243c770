// Package demo provides the simulated backend the showcase forms submit to.
package demo

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"time"

	"github.com/goliatone/go-showcase/pkg/form"
)

// ErrRejected is the simulated server failure.
var ErrRejected = errors.New("demo: submission rejected")

// RejectedMessage is shown on the form when the simulated server rejects a
// submission.
const RejectedMessage = "Server error: unable to process your submission. Please try again."

// Submitter waits Delay and then fails with probability FailureRate.
type Submitter struct {
	Delay       time.Duration
	FailureRate float64
	Logger      *log.Logger

	// Roll returns a value in [0, 1); nil uses math/rand/v2.
	Roll func() float64
}

// Func adapts the submitter to the form engine callback.
func (s *Submitter) Func() form.SubmitFunc {
	return s.Submit
}

// Submit honours ctx while waiting. Values are only logged.
func (s *Submitter) Submit(ctx context.Context, values map[string]any) error {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if s.FailureRate > 0 && s.roll() < s.FailureRate {
		s.logf("demo: rejected submission with %d fields", len(values))
		return &form.UserError{Message: RejectedMessage, Err: ErrRejected}
	}
	s.logf("demo: accepted submission with %d fields", len(values))
	return nil
}

func (s *Submitter) roll() float64 {
	if s.Roll != nil {
		return s.Roll()
	}
	return rand.Float64()
}

func (s *Submitter) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}
