package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

func TestProvisionAccountCommits(t *testing.T) {
	pg, mock := newMockDB(t)
	repo := NewUserRepository(pg)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))
	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(`INSERT INTO credits`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	user := &models.User{Username: "writer", Email: "writer@example.com", Password: "hash"}
	sub := &models.Subscription{
		Plan:      models.PlanFree,
		Cycle:     models.CycleMonthly,
		IsActive:  true,
		StartDate: now,
		EndDate:   now.Add(models.CycleDuration(models.CycleMonthly)),
	}
	ledger := &models.CreditLedger{TotalCredits: 500}

	err := repo.ProvisionAccount(context.Background(), user, sub, ledger)
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, int64(1), sub.UserID)
	assert.Equal(t, int64(1), ledger.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionAccountRollsBackOnLedgerFailure(t *testing.T) {
	pg, mock := newMockDB(t)
	repo := NewUserRepository(pg)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))
	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(`INSERT INTO credits`).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	user := &models.User{Username: "writer", Email: "writer@example.com", Password: "hash"}
	sub := &models.Subscription{Plan: models.PlanFree, Cycle: models.CycleMonthly, IsActive: true}
	ledger := &models.CreditLedger{TotalCredits: 500}

	err := repo.ProvisionAccount(context.Background(), user, sub, ledger)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
