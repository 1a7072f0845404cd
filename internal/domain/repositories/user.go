package repositories

import (
	"context"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

type UserRepository interface {
	//create
	CreateUser(ctx context.Context, user *models.User) error

	// ProvisionAccount creates the user together with the free-tier
	// subscription and credit ledger in one transaction; a signup gets all
	// three rows or none. UserID on sub and ledger is filled in from the
	// inserted user.
	ProvisionAccount(ctx context.Context, user *models.User, sub *models.Subscription, ledger *models.CreditLedger) error

	//get
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	//update
	UpdateUser(ctx context.Context, user *models.User) error

	//delete
	Delete(ctx context.Context, id int64) error
}
