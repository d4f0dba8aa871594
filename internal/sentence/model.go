// Package sentence provides the learnable sentence domain model and repository.
package sentence

import (
	"time"

	"github.com/t-yamaguchi/recite/internal/scheduling"
)

// Sentence represents one sentence a user practices, together with its
// live scheduling state. The scheduling columns mirror scheduling.State
// and are only ever written through SetState.
type Sentence struct {
	ID           int64      `db:"id"`
	UserID       int64      `db:"user_id"`
	OriginalText string     `db:"original_text"`
	LanguageCode string     `db:"language_code"`
	Category     *string    `db:"category"`
	Score        float64    `db:"score"`
	ReviewCount  int        `db:"review_count"`
	LastReview   *time.Time `db:"last_review"`
	NextReview   time.Time  `db:"next_review"`
	CreatedAt    time.Time  `db:"created_at"`
}

// State returns the sentence's scheduling state.
func (s *Sentence) State() scheduling.State {
	return scheduling.State{
		Score:       s.Score,
		ReviewCount: s.ReviewCount,
		LastReview:  s.LastReview,
		NextReview:  s.NextReview,
	}
}

// SetState overwrites the sentence's scheduling columns with st.
func (s *Sentence) SetState(st scheduling.State) {
	s.Score = st.Score
	s.ReviewCount = st.ReviewCount
	s.LastReview = st.LastReview
	s.NextReview = st.NextReview
}
