package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SessionRepository defines operations for recording and querying review attempts.
type SessionRepository interface {
	Create(ctx context.Context, record *Record) error
	FindByID(ctx context.Context, id int64) (*Record, error)
	FindByUser(ctx context.Context, userID int64) ([]Record, error)
	FindBySentence(ctx context.Context, sentenceID int64) ([]Record, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountBySentence(ctx context.Context, sentenceID int64) (int, error)
	AverageScoreByUser(ctx context.Context, userID int64) (float64, error)
}

// DBSessionRepository implements SessionRepository using MySQL.
type DBSessionRepository struct {
	db *sqlx.DB
}

// NewDBSessionRepository creates a new DBSessionRepository.
func NewDBSessionRepository(db *sqlx.DB) *DBSessionRepository {
	return &DBSessionRepository{db: db}
}

// Create appends a new session record.
func (r *DBSessionRepository) Create(ctx context.Context, record *Record) error {
	return Insert(ctx, r.db, record)
}

// Insert appends a session record on any sqlx executor so the review
// service can include it in the same transaction as the sentence update.
func Insert(ctx context.Context, ext sqlx.ExtContext, record *Record) error {
	result, err := ext.ExecContext(ctx,
		"INSERT INTO sessions (user_id, sentence_id, input, score, created_at) VALUES (?, ?, ?, ?, ?)",
		record.UserID, record.SentenceID, record.Input, record.Score, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get session insert ID: %w", err)
	}
	record.ID = id
	return nil
}

// FindByID returns the session record with the given ID, or nil if not found.
func (r *DBSessionRepository) FindByID(ctx context.Context, id int64) (*Record, error) {
	var record Record
	err := r.db.GetContext(ctx, &record, "SELECT * FROM sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &record, nil
}

// FindByUser returns all session records for a user in creation order.
func (r *DBSessionRepository) FindByUser(ctx context.Context, userID int64) ([]Record, error) {
	var records []Record
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM sessions WHERE user_id = ? ORDER BY id", userID); err != nil {
		return nil, fmt.Errorf("load sessions by user: %w", err)
	}
	return records, nil
}

// FindBySentence returns all session records for a sentence in creation order.
func (r *DBSessionRepository) FindBySentence(ctx context.Context, sentenceID int64) ([]Record, error) {
	var records []Record
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM sessions WHERE sentence_id = ? ORDER BY id", sentenceID); err != nil {
		return nil, fmt.Errorf("load sessions by sentence: %w", err)
	}
	return records, nil
}

// CountByUser returns the number of session records for a user.
func (r *DBSessionRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM sessions WHERE user_id = ?", userID); err != nil {
		return 0, fmt.Errorf("count sessions by user: %w", err)
	}
	return count, nil
}

// CountBySentence returns the number of session records for a sentence.
func (r *DBSessionRepository) CountBySentence(ctx context.Context, sentenceID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM sessions WHERE sentence_id = ?", sentenceID); err != nil {
		return 0, fmt.Errorf("count sessions by sentence: %w", err)
	}
	return count, nil
}

// AverageScoreByUser returns the average outcome score over a user's
// evaluated session records. Records without a score are excluded from the
// average, not counted as zero. Returns 0 when no record has a score.
func (r *DBSessionRepository) AverageScoreByUser(ctx context.Context, userID int64) (float64, error) {
	var avg sql.NullFloat64
	if err := r.db.GetContext(ctx, &avg,
		"SELECT AVG(score) FROM sessions WHERE user_id = ?", userID); err != nil {
		return 0, fmt.Errorf("average session score: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
