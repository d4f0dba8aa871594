// Package scorer defines the external answer-scoring collaborator. The
// scheduling engine never calls a scorer itself; the review CLI feeds a
// scorer's normalized result into the engine as an outcome.
package scorer

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/scorer/mock_scorer.go -package=mock_scorer

// Scorer grades a user's translations of a sentence.
type Scorer interface {
	ScoreTranslations(ctx context.Context, req ScoreTranslationsRequest) (ScoreTranslationsResponse, error)
}

// ScoreTranslationsRequest holds one sentence and the user's translations,
// keyed by target language code.
type ScoreTranslationsRequest struct {
	OriginalText string            `json:"original_text"`
	LanguageCode string            `json:"language_code"`
	Translations map[string]string `json:"translations"`
}

// ScoreTranslationsResponse holds per-language scores and their mean, all
// on [0, 1].
type ScoreTranslationsResponse struct {
	Scores        map[string]float64 `json:"scores"`
	CombinedScore float64            `json:"combined_score"`
}

const (
	// DefaultMaxRetryAttempts applies when a client is built with zero
	// retry attempts configured.
	DefaultMaxRetryAttempts = 3
)
