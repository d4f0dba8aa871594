// Package scheduling implements the spaced-repetition review engine:
// the interval policy, the scheduler that applies review outcomes to
// per-sentence scheduling states, and the due-set selector.
//
// The package is pure computation. It never reads a clock, performs I/O,
// or mutates its inputs; callers supply the current time explicitly and
// persist the returned states themselves.
package scheduling

import (
	"fmt"
	"time"
)

// State holds the live scheduling state of one learnable sentence.
type State struct {
	// Score is the last observed outcome score on [MinScore, MaxScore].
	Score float64
	// ReviewCount is the number of completed reviews.
	ReviewCount int
	// LastReview is the time of the most recent review.
	// It is nil until the first review completes.
	LastReview *time.Time
	// NextReview is the time at or after which the sentence is due.
	// It is set at creation and recomputed after every review.
	NextReview time.Time
}

// NewState returns the state of a newly created sentence, due immediately.
func NewState(now time.Time) State {
	return State{NextReview: now}
}

// Validate checks the state invariants: a non-negative review count, a
// present next review, and a last review that is absent exactly when the
// review count is zero.
func (s State) Validate() error {
	if s.ReviewCount < 0 {
		return fmt.Errorf("%w: negative review count %d", ErrInvalidState, s.ReviewCount)
	}
	if s.NextReview.IsZero() {
		return fmt.Errorf("%w: next review is unset", ErrInvalidState)
	}
	if s.ReviewCount == 0 && s.LastReview != nil {
		return fmt.Errorf("%w: last review set before first review", ErrInvalidState)
	}
	if s.ReviewCount > 0 && s.LastReview == nil {
		return fmt.Errorf("%w: last review missing after %d reviews", ErrInvalidState, s.ReviewCount)
	}
	return nil
}

// Due reports whether the sentence is due at now. The boundary is
// inclusive: a sentence due exactly at now counts as due.
func (s State) Due(now time.Time) bool {
	return !s.NextReview.After(now)
}
