package models

import (
	"time"

	"github.com/google/uuid"
)

// CreditLedger tracks the quota for the current billing period. It is
// replaced, not merged, whenever a plan change takes effect.
type CreditLedger struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	TotalCredits int64     `json:"total_credits" db:"total_credits"`
	UsedCredits  int64     `json:"used_credits" db:"used_credits"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (l *CreditLedger) Available() int64 {
	if l.UsedCredits >= l.TotalCredits {
		return 0
	}
	return l.TotalCredits - l.UsedCredits
}
