package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/repositories"
)

type textRepository struct {
	db *PostgresDB
}

func NewTextRepository(db *PostgresDB) repositories.TextRepository {
	return &textRepository{db: db}
}

func (r *textRepository) GetByID(ctx context.Context, userID int64, id uuid.UUID) (*models.HumanizedText, error) {
	var text models.HumanizedText
	query := `
		SELECT id, user_id, title, original_text, humanized_text, credits_used, created_at, updated_at
		FROM humanized_texts
		WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &text, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get humanized text: %w", err)
	}
	return &text, nil
}

func (r *textRepository) ListByUserID(ctx context.Context, userID int64, page, pageSize int) ([]models.HumanizedText, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	total, err := r.CountByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	texts := []models.HumanizedText{}
	query := `
		SELECT id, user_id, title, original_text, humanized_text, credits_used, created_at, updated_at
		FROM humanized_texts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	err = r.db.SelectContext(ctx, &texts, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list humanized texts: %w", err)
	}

	return texts, total, nil
}

func (r *textRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM humanized_texts WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count humanized texts: %w", err)
	}
	return count, nil
}
