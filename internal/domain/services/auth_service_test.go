package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

type mockUserRepo struct {
	byEmail      map[string]*models.User
	provisionErr error
	nextID       int64

	provisionedSub    *models.Subscription
	provisionedLedger *models.CreditLedger
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: make(map[string]*models.User)}
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) ProvisionAccount(ctx context.Context, user *models.User, sub *models.Subscription, ledger *models.CreditLedger) error {
	if m.provisionErr != nil {
		return m.provisionErr
	}
	m.nextID++
	user.ID = m.nextID
	sub.UserID = user.ID
	ledger.UserID = user.ID
	m.byEmail[user.Email] = user
	m.provisionedSub = sub
	m.provisionedLedger = ledger
	return nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	for email, u := range m.byEmail {
		if u.ID == id {
			delete(m.byEmail, email)
			return nil
		}
	}
	return models.ErrNotFound
}

func newAuthFixture(users *mockUserRepo) (AuthService, *mockSubRepo) {
	subs := &mockSubRepo{}
	jwt := NewJWTService("test-secret", time.Hour)
	return NewAuthService(users, subs, jwt), subs
}

func TestRegisterProvisionsFreeTier(t *testing.T) {
	users := newMockUserRepo()
	svc, _ := newAuthFixture(users)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "writer",
		Email:    "writer@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.Password)
	assert.NotZero(t, resp.User.ID)

	sub := users.provisionedSub
	require.NotNil(t, sub)
	assert.Equal(t, resp.User.ID, sub.UserID)
	assert.Equal(t, models.PlanFree, sub.Plan)
	assert.Equal(t, models.CycleMonthly, sub.Cycle)
	assert.True(t, sub.IsActive)
	assert.WithinDuration(t, sub.StartDate.Add(30*24*time.Hour), sub.EndDate, time.Second)

	ledger := users.provisionedLedger
	require.NotNil(t, ledger)
	assert.Equal(t, resp.User.ID, ledger.UserID)
	assert.Equal(t, int64(500), ledger.TotalCredits)
	assert.Zero(t, ledger.UsedCredits)
}

func TestRegisterFailsWhenProvisioningFails(t *testing.T) {
	users := newMockUserRepo()
	users.provisionErr = errors.New("database unavailable")
	svc, _ := newAuthFixture(users)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "writer",
		Email:    "writer@example.com",
		Password: "hunter22",
	})
	require.Error(t, err)

	// Nothing half-created: the account does not exist at all.
	assert.Empty(t, users.byEmail)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newMockUserRepo()
	users.byEmail["writer@example.com"] = &models.User{ID: 1, Email: "writer@example.com"}
	svc, _ := newAuthFixture(users)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "writer",
		Email:    "writer@example.com",
		Password: "hunter22",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLoginDerivesPlanFromSubscription(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := newMockUserRepo()
	users.byEmail["writer@example.com"] = &models.User{
		ID:       1,
		Username: "writer",
		Email:    "writer@example.com",
		Password: string(hash),
	}
	svc, subs := newAuthFixture(users)
	subs.active = &models.Subscription{UserID: 1, Plan: models.PlanPremium, IsActive: true}

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "writer@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPremium, claims.Plan)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := newMockUserRepo()
	users.byEmail["writer@example.com"] = &models.User{
		ID:       1,
		Email:    "writer@example.com",
		Password: string(hash),
	}
	svc, _ := newAuthFixture(users)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "writer@example.com",
		Password: "wrong",
	})
	assert.Error(t, err)
}
