package scheduling

import "errors"

// Sentinel errors for contract violations.
// Use errors.Is to check: errors.Is(err, scheduling.ErrInvalidState)
var (
	// ErrInvalidState indicates a corrupt scheduling state, such as a
	// negative review count or a post-creation state without a next review.
	ErrInvalidState = errors.New("scheduling: invalid state")

	// ErrInvalidOutcome indicates a review outcome outside the canonical
	// score range or with a success flag inconsistent with the threshold.
	ErrInvalidOutcome = errors.New("scheduling: invalid outcome")
)
