// Package session provides the append-only review attempt log.
package session

import (
	"encoding/json"
	"time"
)

// Record is one immutable review attempt: the sentence reviewed, the raw
// input payload (per-language translation strings), and the outcome score
// when one exists. UserID is nil for attempts made without an
// authenticated user; Score is nil until the attempt has been evaluated.
// Records are never mutated after creation and are deleted only as a
// cascade of their sentence or user.
type Record struct {
	ID         int64           `db:"id"`
	UserID     *int64          `db:"user_id"`
	SentenceID int64           `db:"sentence_id"`
	Input      json.RawMessage `db:"input"`
	Score      *float64        `db:"score"`
	CreatedAt  time.Time       `db:"created_at"`
}
