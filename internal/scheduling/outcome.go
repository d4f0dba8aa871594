package scheduling

import "fmt"

const (
	// MinScore and MaxScore bound the canonical outcome score range.
	MinScore = 0.0
	MaxScore = 1.0

	// SuccessThreshold is the default score at or above which a review
	// counts as remembered for interval-growth purposes.
	SuccessThreshold = 0.7
)

// Outcome is the scored result of one review attempt, produced by the
// caller's scorer and consumed once by the scheduler.
type Outcome struct {
	Score     float64
	IsSuccess bool
}

// NewOutcome builds an outcome from a score on [MinScore, MaxScore],
// deriving the success flag from SuccessThreshold.
func NewOutcome(score float64) (Outcome, error) {
	return NewOutcomeWithThreshold(score, SuccessThreshold)
}

// NewOutcomeWithThreshold builds an outcome with a caller-supplied success
// threshold on [MinScore, MaxScore]. The flag is fixed here, against the
// threshold in force at review time; the scheduler never re-derives it.
func NewOutcomeWithThreshold(score, threshold float64) (Outcome, error) {
	if score < MinScore || score > MaxScore {
		return Outcome{}, fmt.Errorf("%w: score %v outside [%v, %v]", ErrInvalidOutcome, score, MinScore, MaxScore)
	}
	if threshold < MinScore || threshold > MaxScore {
		return Outcome{}, fmt.Errorf("%w: threshold %v outside [%v, %v]", ErrInvalidOutcome, threshold, MinScore, MaxScore)
	}
	return Outcome{
		Score:     score,
		IsSuccess: score >= threshold,
	}, nil
}

// Validate checks the score range.
func (o Outcome) Validate() error {
	if o.Score < MinScore || o.Score > MaxScore {
		return fmt.Errorf("%w: score %v outside [%v, %v]", ErrInvalidOutcome, o.Score, MinScore, MaxScore)
	}
	return nil
}
