package sentence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/t-yamaguchi/recite/internal/database"
	"github.com/t-yamaguchi/recite/internal/scheduling"
)

// SentenceRepository defines operations for managing sentences.
type SentenceRepository interface {
	Create(ctx context.Context, s *Sentence) error
	CreateBatch(ctx context.Context, sentences []Sentence) ([]Sentence, error)
	FindByID(ctx context.Context, id int64) (*Sentence, error)
	FindByUser(ctx context.Context, userID int64) ([]Sentence, error)
	FindByUserAndCategory(ctx context.Context, userID int64, category string) ([]Sentence, error)
	FindCategories(ctx context.Context, userID int64) ([]string, error)
	FindDueByUser(ctx context.Context, userID int64, now time.Time) ([]Sentence, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
}

// DBSentenceRepository implements SentenceRepository using MySQL.
type DBSentenceRepository struct {
	db *sqlx.DB
}

// NewDBSentenceRepository creates a new DBSentenceRepository.
func NewDBSentenceRepository(db *sqlx.DB) *DBSentenceRepository {
	return &DBSentenceRepository{db: db}
}

// Create inserts a new sentence with its initial scheduling state.
func (r *DBSentenceRepository) Create(ctx context.Context, s *Sentence) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO sentences (user_id, original_text, language_code, category, score, review_count, last_review, next_review)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.OriginalText, s.LanguageCode, s.Category,
		s.Score, s.ReviewCount, s.LastReview, s.NextReview)
	if err != nil {
		return fmt.Errorf("insert sentence: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get sentence insert ID: %w", err)
	}
	s.ID = id
	return nil
}

// CreateBatch inserts sentences in a single statement and returns them
// with their assigned IDs. MySQL numbers a multi-row insert sequentially
// from the statement's first ID.
func (r *DBSentenceRepository) CreateBatch(ctx context.Context, sentences []Sentence) ([]Sentence, error) {
	if len(sentences) == 0 {
		return nil, nil
	}

	columns := []string{
		"user_id", "original_text", "language_code", "category",
		"score", "review_count", "last_review", "next_review",
	}
	args := make([]interface{}, 0, len(sentences)*len(columns))
	for _, s := range sentences {
		args = append(args,
			s.UserID, s.OriginalText, s.LanguageCode, s.Category,
			s.Score, s.ReviewCount, s.LastReview, s.NextReview)
	}

	result, err := r.db.ExecContext(ctx,
		database.BuildMultiRowInsert("sentences", columns, len(sentences)), args...)
	if err != nil {
		return nil, fmt.Errorf("insert sentences: %w", err)
	}
	firstID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get sentence insert ID: %w", err)
	}

	created := make([]Sentence, len(sentences))
	copy(created, sentences)
	for i := range created {
		created[i].ID = firstID + int64(i)
	}
	return created, nil
}

// FindByID returns the sentence with the given ID, or nil if not found.
func (r *DBSentenceRepository) FindByID(ctx context.Context, id int64) (*Sentence, error) {
	var s Sentence
	err := r.db.GetContext(ctx, &s, "SELECT * FROM sentences WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sentence: %w", err)
	}
	return &s, nil
}

// FindByUser returns all sentences belonging to a user.
func (r *DBSentenceRepository) FindByUser(ctx context.Context, userID int64) ([]Sentence, error) {
	var sentences []Sentence
	if err := r.db.SelectContext(ctx, &sentences,
		"SELECT * FROM sentences WHERE user_id = ? ORDER BY id", userID); err != nil {
		return nil, fmt.Errorf("load sentences by user: %w", err)
	}
	return sentences, nil
}

// FindByUserAndCategory returns a user's sentences in one category.
func (r *DBSentenceRepository) FindByUserAndCategory(ctx context.Context, userID int64, category string) ([]Sentence, error) {
	var sentences []Sentence
	if err := r.db.SelectContext(ctx, &sentences,
		"SELECT * FROM sentences WHERE user_id = ? AND category = ? ORDER BY id",
		userID, category); err != nil {
		return nil, fmt.Errorf("load sentences by category: %w", err)
	}
	return sentences, nil
}

// FindCategories returns the distinct non-empty categories of a user's sentences.
func (r *DBSentenceRepository) FindCategories(ctx context.Context, userID int64) ([]string, error) {
	var categories []string
	if err := r.db.SelectContext(ctx, &categories,
		"SELECT DISTINCT category FROM sentences WHERE user_id = ? AND category IS NOT NULL ORDER BY category",
		userID); err != nil {
		return nil, fmt.Errorf("load sentence categories: %w", err)
	}
	return categories, nil
}

// FindDueByUser returns the user's sentences due at now, the boundary
// inclusive, ordered by next review then ID. Read-committed isolation is
// enough here: the caller only needs a consistent snapshot per row.
func (r *DBSentenceRepository) FindDueByUser(ctx context.Context, userID int64, now time.Time) ([]Sentence, error) {
	var sentences []Sentence
	if err := r.db.SelectContext(ctx, &sentences,
		"SELECT * FROM sentences WHERE user_id = ? AND next_review <= ? ORDER BY next_review, id",
		userID, now); err != nil {
		return nil, fmt.Errorf("load due sentences: %w", err)
	}
	return sentences, nil
}

// UpdateText replaces the original text of a sentence.
func (r *DBSentenceRepository) UpdateText(ctx context.Context, id int64, text string) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE sentences SET original_text = ? WHERE id = ?", text, id); err != nil {
		return fmt.Errorf("update sentence text: %w", err)
	}
	return nil
}

// Delete removes a sentence and its session records in one transaction.
// Sessions go first to satisfy the foreign key constraint.
func (r *DBSentenceRepository) Delete(ctx context.Context, id int64) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE sentence_id = ?", id); err != nil {
			return fmt.Errorf("delete sentence sessions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM sentences WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete sentence: %w", err)
		}
		return nil
	})
}

// UpdateProgress persists a new scheduling state for a sentence. It runs on
// any sqlx executor so the review service can include it in the same
// transaction as the session record.
func UpdateProgress(ctx context.Context, ext sqlx.ExtContext, id int64, st scheduling.State) error {
	if _, err := ext.ExecContext(ctx,
		"UPDATE sentences SET score = ?, review_count = ?, last_review = ?, next_review = ? WHERE id = ?",
		st.Score, st.ReviewCount, st.LastReview, st.NextReview, id); err != nil {
		return fmt.Errorf("update sentence progress: %w", err)
	}
	return nil
}
