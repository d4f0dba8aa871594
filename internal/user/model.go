// Package user provides user and target language domain models and repositories.
package user

import "time"

// User represents a learner with a native language.
type User struct {
	ID             int64     `db:"id"`
	Username       string    `db:"username"`
	NativeLanguage string    `db:"native_language"`
	CreatedAt      time.Time `db:"created_at"`
}

// TargetLanguage represents a language a user is learning.
type TargetLanguage struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	LanguageCode string    `db:"language_code"`
	CreatedAt    time.Time `db:"created_at"`
}
