package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/repositories"
)

type creditRepository struct {
	db *PostgresDB
}

func NewCreditRepository(db *PostgresDB) repositories.CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) GetByUserID(ctx context.Context, userID int64) (*models.CreditLedger, error) {
	var ledger models.CreditLedger
	query := `SELECT id, user_id, total_credits, used_credits, created_at, updated_at
              FROM credits WHERE user_id = $1`

	err := r.db.GetContext(ctx, &ledger, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credits: %w", err)
	}
	return &ledger, nil
}

func (r *creditRepository) Create(ctx context.Context, ledger *models.CreditLedger) error {
	if ledger.ID == uuid.Nil {
		ledger.ID = uuid.New()
	}

	query := `INSERT INTO credits (id, user_id, total_credits, used_credits)
              VALUES ($1, $2, $3, $4)
              RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, ledger.ID, ledger.UserID,
		ledger.TotalCredits, ledger.UsedCredits).Scan(&ledger.CreatedAt, &ledger.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create credits: %w", err)
	}
	return nil
}

func (r *creditRepository) Reset(ctx context.Context, userID int64, total int64) error {
	query := `UPDATE credits
              SET total_credits = $2, used_credits = 0, updated_at = CURRENT_TIMESTAMP
              WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID, total)
	if err != nil {
		return fmt.Errorf("failed to reset credits: %w", err)
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

// DebitWithUsage runs the balance check, the debit and the usage-record
// insert as one serializable transaction. The ledger row is locked first so
// two concurrent submits against the same account cannot both observe the
// pre-debit balance.
func (r *creditRepository) DebitWithUsage(ctx context.Context, text *models.HumanizedText) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin debit transaction: %w", err)
	}
	defer tx.Rollback()

	var total, used int64
	err = tx.QueryRowContext(ctx, `
		SELECT total_credits, used_credits
		FROM credits
		WHERE user_id = $1
		FOR UPDATE`, text.UserID).Scan(&total, &used)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to lock credits: %w", err)
	}

	available := total - used
	if available < 0 {
		available = 0
	}
	if text.CreditsUsed > available {
		return &models.InsufficientCreditsError{
			Needed:    text.CreditsUsed,
			Available: available,
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE credits
		SET used_credits = used_credits + $2, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1`, text.UserID, text.CreditsUsed)
	if err != nil {
		return fmt.Errorf("failed to debit credits: %w", err)
	}

	if text.ID == uuid.Nil {
		text.ID = uuid.New()
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO humanized_texts (id, user_id, title, original_text, humanized_text, credits_used)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		text.ID, text.UserID, text.Title, text.OriginalText,
		text.HumanizedText, text.CreditsUsed,
	).Scan(&text.CreatedAt, &text.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert humanized text: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit debit transaction: %w", err)
	}
	return nil
}
