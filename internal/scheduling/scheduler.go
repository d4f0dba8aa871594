package scheduling

import (
	"fmt"
	"time"
)

// Scheduler applies review outcomes to scheduling states. It is stateless
// besides its interval policy and safe for concurrent use; serializing
// concurrent reviews of the same sentence is the caller's job.
type Scheduler struct {
	policy IntervalPolicy
}

// NewScheduler creates a Scheduler with the LinearGrowth policy.
func NewScheduler() *Scheduler {
	return NewSchedulerWithPolicy(LinearGrowth)
}

// NewSchedulerWithPolicy creates a Scheduler with a custom interval policy.
func NewSchedulerWithPolicy(policy IntervalPolicy) *Scheduler {
	return &Scheduler{policy: policy}
}

// ApplyReview returns the scheduling state after one completed review.
//
// The score is overwritten with the outcome's score, the review count
// increments by exactly one, the last review becomes now, and the next
// review is now plus the policy's interval. Neither input is mutated.
func (s *Scheduler) ApplyReview(prev State, outcome Outcome, now time.Time) (State, error) {
	if err := prev.Validate(); err != nil {
		return State{}, err
	}
	if err := outcome.Validate(); err != nil {
		return State{}, err
	}

	lastReview := now
	next := State{
		Score:       outcome.Score,
		ReviewCount: prev.ReviewCount + 1,
		LastReview:  &lastReview,
	}

	intervalDays, err := s.policy(next.ReviewCount, outcome.IsSuccess)
	if err != nil {
		return State{}, fmt.Errorf("compute interval: %w", err)
	}
	if intervalDays < 1 {
		return State{}, fmt.Errorf("%w: interval policy returned %d days", ErrInvalidState, intervalDays)
	}
	next.NextReview = now.AddDate(0, 0, intervalDays)

	return next, nil
}
