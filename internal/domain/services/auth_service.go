package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/repositories"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	ValidateToken(tokenString string) (*TokenClaims, error)
	DeleteAccount(ctx context.Context, session *Session) error
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type TokenClaims struct {
	UserID int64           `json:"user_id"`
	Plan   models.PlanType `json:"plan"`
	Email  string          `json:"email"`
}

type authService struct {
	userRepo   repositories.UserRepository
	subRepo    repositories.SubscriptionRepository
	jwtService JWTService
}

func NewAuthService(
	userRepo repositories.UserRepository,
	subRepo repositories.SubscriptionRepository,
	jwtService JWTService,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		subRepo:    subRepo,
		jwtService: jwtService,
	}
}

// Register creates the account and provisions the implicit free tier: an
// active free subscription and a ledger holding the free credit grant.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	extUser, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil && extUser != nil {
		return nil, fmt.Errorf("user with email %s already exists", req.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	now := time.Now()
	sub := &models.Subscription{
		Plan:      models.PlanFree,
		Cycle:     models.CycleMonthly,
		IsActive:  true,
		StartDate: now,
		EndDate:   now.Add(models.CycleDuration(models.CycleMonthly)),
	}
	ledger := &models.CreditLedger{
		TotalCredits: models.CreditGrant(models.PlanFree),
		UsedCredits:  0,
	}

	// All three rows or none: an account without a ledger would turn every
	// later humanize call into an internal error.
	if err := s.userRepo.ProvisionAccount(ctx, user, sub, ledger); err != nil {
		return nil, fmt.Errorf("failed to provision account: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, models.PlanFree, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	plan := models.PlanFree
	if sub, err := s.subRepo.GetActiveByUserID(ctx, user.ID); err == nil {
		plan = sub.Plan
	}

	token, err := s.jwtService.GenerateToken(user.ID, plan, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenClaims, error) {
	return s.jwtService.ValidateToken(tokenString)
}

func (s *authService) DeleteAccount(ctx context.Context, session *Session) error {
	if !session.Authenticated() {
		return models.ErrAuthRequired
	}
	return s.userRepo.Delete(ctx, session.UserID)
}
