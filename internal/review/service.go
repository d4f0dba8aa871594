// Package review orchestrates review sessions: due-set selection, applying
// review outcomes through the scheduling engine, and recording attempts.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/t-yamaguchi/recite/internal/database"
	"github.com/t-yamaguchi/recite/internal/scheduling"
	"github.com/t-yamaguchi/recite/internal/sentence"
	"github.com/t-yamaguchi/recite/internal/session"
)

// ErrSentenceNotFound indicates a review was submitted for a sentence that
// does not exist.
var ErrSentenceNotFound = errors.New("review: sentence not found")

// Service coordinates the scheduling engine with the persistence layer.
// The engine itself never touches storage; the service supplies it with
// state snapshots and persists what it returns.
type Service struct {
	db        *sqlx.DB
	sentences sentence.SentenceRepository
	sessions  session.SessionRepository
	scheduler *scheduling.Scheduler
	now       func() time.Time
}

// NewService creates a review service. A nil now falls back to the UTC
// wall clock; tests inject a fixed clock.
func NewService(
	db *sqlx.DB,
	sentences sentence.SentenceRepository,
	sessions session.SessionRepository,
	scheduler *scheduling.Scheduler,
	now func() time.Time,
) *Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		db:        db,
		sentences: sentences,
		sessions:  sessions,
		scheduler: scheduler,
		now:       now,
	}
}

// AddSentence creates a sentence with a fresh scheduling state, due
// immediately.
func (s *Service) AddSentence(ctx context.Context, userID int64, text, languageCode string, category *string) (*sentence.Sentence, error) {
	now := s.now()
	created := &sentence.Sentence{
		UserID:       userID,
		OriginalText: text,
		LanguageCode: languageCode,
		Category:     category,
	}
	created.SetState(scheduling.NewState(now))

	if err := s.sentences.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create sentence: %w", err)
	}
	return created, nil
}

// AddSentences creates several sentences at once, each with a fresh
// scheduling state and due immediately. The insert is a single statement.
func (s *Service) AddSentences(ctx context.Context, userID int64, texts []string, languageCode string, category *string) ([]sentence.Sentence, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	now := s.now()
	batch := make([]sentence.Sentence, len(texts))
	for i, text := range texts {
		batch[i] = sentence.Sentence{
			UserID:       userID,
			OriginalText: text,
			LanguageCode: languageCode,
			Category:     category,
		}
		batch[i].SetState(scheduling.NewState(now))
	}

	created, err := s.sentences.CreateBatch(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("create sentences: %w", err)
	}
	return created, nil
}

// DueSentences returns the user's due sentences, most overdue first. The
// repository provides the snapshot; the engine's selector decides
// eligibility and order.
func (s *Service) DueSentences(ctx context.Context, userID int64) ([]sentence.Sentence, error) {
	now := s.now()
	snapshot, err := s.sentences.FindDueByUser(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("load due snapshot: %w", err)
	}

	items := make([]scheduling.Item, len(snapshot))
	byID := make(map[int64]sentence.Sentence, len(snapshot))
	for i, sent := range snapshot {
		items[i] = scheduling.Item{ID: sent.ID, State: sent.State()}
		byID[sent.ID] = sent
	}

	ordered := make([]sentence.Sentence, 0, len(snapshot))
	for _, id := range scheduling.SelectDue(items, now) {
		ordered = append(ordered, byID[id])
	}
	return ordered, nil
}

// SubmitReview applies a scored review outcome to a sentence and appends
// the session record. The state update and the record share one
// transaction, which also serializes concurrent reviews of the same
// sentence; the review count therefore increments by exactly one per
// attempt.
func (s *Service) SubmitReview(
	ctx context.Context,
	userID *int64,
	sentenceID int64,
	input json.RawMessage,
	outcome scheduling.Outcome,
) (*sentence.Sentence, error) {
	reviewed, err := s.sentences.FindByID(ctx, sentenceID)
	if err != nil {
		return nil, err
	}
	if reviewed == nil {
		return nil, fmt.Errorf("%w: id %d", ErrSentenceNotFound, sentenceID)
	}

	now := s.now()
	newState, err := s.scheduler.ApplyReview(reviewed.State(), outcome, now)
	if err != nil {
		return nil, err
	}

	score := outcome.Score
	record := &session.Record{
		UserID:     userID,
		SentenceID: sentenceID,
		Input:      input,
		Score:      &score,
		CreatedAt:  now,
	}

	if err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := sentence.UpdateProgress(ctx, tx, sentenceID, newState); err != nil {
			return err
		}
		return session.Insert(ctx, tx, record)
	}); err != nil {
		return nil, err
	}

	reviewed.SetState(newState)
	return reviewed, nil
}

// RecordUnscored appends a session record without an outcome score and
// without touching the scheduling state. This is the path for storing an
// attempt's input before it has been evaluated.
func (s *Service) RecordUnscored(
	ctx context.Context,
	userID *int64,
	sentenceID int64,
	input json.RawMessage,
) (*session.Record, error) {
	existing, err := s.sentences.FindByID(ctx, sentenceID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: id %d", ErrSentenceNotFound, sentenceID)
	}

	record := &session.Record{
		UserID:     userID,
		SentenceID: sentenceID,
		Input:      input,
		CreatedAt:  s.now(),
	}
	if err := s.sessions.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
