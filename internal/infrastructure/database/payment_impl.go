package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/repositories"
)

type paymentRepository struct {
	db *PostgresDB
}

func NewPaymentRepository(db *PostgresDB) repositories.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	query := `
		INSERT INTO payments (id, user_id, plan_type, billing_cycle, amount_cents, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, payment.ID, payment.UserID, payment.Plan,
		payment.Cycle, payment.AmountCents, payment.State).Scan(&payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, userID int64, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	query := `
		SELECT id, user_id, plan_type, billing_cycle, amount_cents, state, fail_reason,
		       created_at, updated_at
		FROM payments
		WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &payment, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Payment, error) {
	payments := []models.Payment{}
	query := `
		SELECT id, user_id, plan_type, billing_cycle, amount_cents, state, fail_reason,
		       created_at, updated_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &payments, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) UpdateState(ctx context.Context, id uuid.UUID, state models.TransitionState, failReason *string) error {
	query := `
		UPDATE payments
		SET state = $2, fail_reason = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, state, failReason)
	if err != nil {
		return fmt.Errorf("failed to update payment state: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
