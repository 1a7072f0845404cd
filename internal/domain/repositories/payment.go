package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, userID int64, id uuid.UUID) (*models.Payment, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Payment, error)
	UpdateState(ctx context.Context, id uuid.UUID, state models.TransitionState, failReason *string) error
}
