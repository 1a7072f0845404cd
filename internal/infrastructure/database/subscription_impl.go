package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/repositories"
)

type subscriptionRepository struct {
	db *PostgresDB
}

func NewSubscriptionRepository(db *PostgresDB) repositories.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetActiveByUserID(ctx context.Context, userID int64) (*models.Subscription, error) {
	var sub models.Subscription
	query := `
		SELECT id, user_id, plan_type, billing_cycle, is_active, start_date, end_date,
		       created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, &sub, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	query := `
		INSERT INTO subscriptions (id, user_id, plan_type, billing_cycle, is_active, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, sub.ID, sub.UserID, sub.Plan, sub.Cycle,
		sub.IsActive, sub.StartDate, sub.EndDate).Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// ApplyPlanChange retires the previous subscription, activates the new one
// and replaces the credit ledger with the new plan's grant in a single
// transaction. Prior plan history stays in the table, deactivated.
func (r *subscriptionRepository) ApplyPlanChange(ctx context.Context, sub *models.Subscription, creditGrant int64) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin plan change transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND is_active = TRUE`, sub.UserID)
	if err != nil {
		return fmt.Errorf("failed to deactivate prior subscription: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO subscriptions (id, user_id, plan_type, billing_cycle, is_active, start_date, end_date)
		VALUES ($1, $2, $3, $4, TRUE, $5, $6)
		RETURNING created_at, updated_at`,
		sub.ID, sub.UserID, sub.Plan, sub.Cycle, sub.StartDate, sub.EndDate,
	).Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	sub.IsActive = true

	_, err = tx.ExecContext(ctx, `
		UPDATE credits
		SET total_credits = $2, used_credits = 0, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1`, sub.UserID, creditGrant)
	if err != nil {
		return fmt.Errorf("failed to reset credits for plan change: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan change: %w", err)
	}
	return nil
}
