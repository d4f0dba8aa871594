package scheduling

import "fmt"

const failureIntervalDays = 1

// IntervalPolicy maps a post-review count and a success flag to the number
// of days until the next review. It is the single substitution point for
// callers that want a different growth curve.
type IntervalPolicy func(reviewCount int, isSuccess bool) (int, error)

// LinearGrowth returns the interval for a completed review.
//
// reviewCount is the count including the review being processed, so the
// first successful review yields 2 days, the second 4 days, and so on.
// A failed review resets the interval to one day without touching the
// review count. Growth is deliberately linear, not exponential.
func LinearGrowth(reviewCount int, isSuccess bool) (int, error) {
	// The post-review count is at least 1 in any valid call; anything
	// lower means the caller miscomputed it.
	if reviewCount < 1 {
		return 0, fmt.Errorf("%w: post-review count %d < 1", ErrInvalidState, reviewCount)
	}

	if !isSuccess {
		return failureIntervalDays, nil
	}

	interval := reviewCount * 2
	if interval < 1 {
		interval = 1
	}
	return interval, nil
}
