package repositories

import (
	"context"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

type CreditRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.CreditLedger, error)
	Create(ctx context.Context, ledger *models.CreditLedger) error

	// Reset replaces the period's quota: total_credits = total,
	// used_credits = 0. Used exclusively by the billing transition.
	Reset(ctx context.Context, userID int64, total int64) error

	// DebitWithUsage atomically debits text.CreditsUsed from the user's
	// ledger and inserts the usage record. The row is locked for the duration
	// so two concurrent submits cannot both pass the balance check. Returns
	// *models.InsufficientCreditsError without mutating anything when the
	// balance does not cover the cost.
	DebitWithUsage(ctx context.Context, text *models.HumanizedText) error
}
