package repositories

import (
	"context"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

type SubscriptionRepository interface {
	// GetActiveByUserID returns the single active subscription for the user,
	// or models.ErrNotFound when none exists.
	GetActiveByUserID(ctx context.Context, userID int64) (*models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error

	// ApplyPlanChange deactivates any prior subscription, inserts the new one
	// and resets the credit ledger to the new plan's grant, all in one
	// transaction. Called exclusively by the billing transition after payment
	// has succeeded (or directly for the free tier).
	ApplyPlanChange(ctx context.Context, sub *models.Subscription, creditGrant int64) error
}
