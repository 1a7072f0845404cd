package models

import (
	"time"

	"github.com/google/uuid"
)

// HumanizedText is one completed transformation request ("project" in the
// dashboard). Rows are written once and never updated.
type HumanizedText struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	Title         string    `json:"title" db:"title"`
	OriginalText  string    `json:"original_text" db:"original_text"`
	HumanizedText string    `json:"humanized_text" db:"humanized_text"`
	CreditsUsed   int64     `json:"credits_used" db:"credits_used"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
