package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/t-yamaguchi/recite/internal/database"
)

// Sentinel errors for user management.
var (
	ErrUsernameTaken  = errors.New("user: username already exists")
	ErrLanguageExists = errors.New("user: target language already added")
	ErrNotFound       = errors.New("user: not found")
)

// UserRepository defines operations for managing users and their target languages.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64) error
	AddTargetLanguage(ctx context.Context, userID int64, languageCode string) (*TargetLanguage, error)
	FindTargetLanguages(ctx context.Context, userID int64) ([]TargetLanguage, error)
}

// DBUserRepository implements UserRepository using MySQL.
type DBUserRepository struct {
	db *sqlx.DB
}

// NewDBUserRepository creates a new DBUserRepository.
func NewDBUserRepository(db *sqlx.DB) *DBUserRepository {
	return &DBUserRepository{db: db}
}

// Create inserts a new user. The username must not be taken.
func (r *DBUserRepository) Create(ctx context.Context, u *User) error {
	existing, err := r.FindByUsername(ctx, u.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, u.Username)
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, native_language, created_at) VALUES (?, ?, ?)",
		u.Username, u.NativeLanguage, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get user insert ID: %w", err)
	}
	u.ID = id
	return nil
}

// FindByID returns the user with the given ID, or nil if not found.
func (r *DBUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, "SELECT * FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

// FindByUsername returns the user with the given username, or nil if not found.
func (r *DBUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, "SELECT * FROM users WHERE username = ?", username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user by username: %w", err)
	}
	return &u, nil
}

// FindAll returns all users ordered by ID.
func (r *DBUserRepository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load all users: %w", err)
	}
	return users, nil
}

// Delete removes a user and all dependent data in one transaction.
// Sessions go first, then target languages and sentences, so that foreign
// key constraints hold at every step.
func (r *DBUserRepository) Delete(ctx context.Context, id int64) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = ?", id); err != nil {
			return fmt.Errorf("delete user sessions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM user_languages WHERE user_id = ?", id); err != nil {
			return fmt.Errorf("delete user languages: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM sentences WHERE user_id = ?", id); err != nil {
			return fmt.Errorf("delete user sentences: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

// AddTargetLanguage registers a language the user is learning.
func (r *DBUserRepository) AddTargetLanguage(ctx context.Context, userID int64, languageCode string) (*TargetLanguage, error) {
	u, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, userID)
	}

	var existing TargetLanguage
	err = r.db.GetContext(ctx, &existing,
		"SELECT * FROM user_languages WHERE user_id = ? AND language_code = ?",
		userID, languageCode)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrLanguageExists, languageCode)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load target language: %w", err)
	}

	lang := TargetLanguage{
		UserID:       userID,
		LanguageCode: languageCode,
	}
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO user_languages (user_id, language_code) VALUES (?, ?)",
		userID, languageCode)
	if err != nil {
		return nil, fmt.Errorf("insert target language: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get target language insert ID: %w", err)
	}
	lang.ID = id
	return &lang, nil
}

// FindTargetLanguages returns the languages a user is learning.
func (r *DBUserRepository) FindTargetLanguages(ctx context.Context, userID int64) ([]TargetLanguage, error) {
	var langs []TargetLanguage
	if err := r.db.SelectContext(ctx, &langs,
		"SELECT * FROM user_languages WHERE user_id = ? ORDER BY id", userID); err != nil {
		return nil, fmt.Errorf("load target languages: %w", err)
	}
	return langs, nil
}
