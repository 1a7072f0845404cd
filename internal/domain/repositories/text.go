package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

type TextRepository interface {
	GetByID(ctx context.Context, userID int64, id uuid.UUID) (*models.HumanizedText, error)

	// ListByUserID returns one page of the user's projects, newest first,
	// along with the total row count for pagination.
	ListByUserID(ctx context.Context, userID int64, page, pageSize int) ([]models.HumanizedText, int64, error)

	CountByUserID(ctx context.Context, userID int64) (int64, error)
}
