package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/repositories"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/cache"
)

type AccountService interface {
	Overview(ctx context.Context, session *Session) (*cache.AccountOverview, error)
	ListProjects(ctx context.Context, session *Session, page, pageSize int) ([]models.HumanizedText, int64, error)
	GetProject(ctx context.Context, session *Session, id uuid.UUID) (*models.HumanizedText, error)
}

type accountService struct {
	subRepo    repositories.SubscriptionRepository
	creditRepo repositories.CreditRepository
	textRepo   repositories.TextRepository
	overviews  *cache.OverviewCache
	logger     *slog.Logger
}

func NewAccountService(
	subRepo repositories.SubscriptionRepository,
	creditRepo repositories.CreditRepository,
	textRepo repositories.TextRepository,
	overviews *cache.OverviewCache,
	logger *slog.Logger,
) AccountService {
	return &accountService{
		subRepo:    subRepo,
		creditRepo: creditRepo,
		textRepo:   textRepo,
		overviews:  overviews,
		logger:     logger,
	}
}

// Overview assembles the dashboard header. Served from the redis cache when
// possible; recomputed and cached otherwise.
func (s *accountService) Overview(ctx context.Context, session *Session) (*cache.AccountOverview, error) {
	if !session.Authenticated() {
		return nil, models.ErrAuthRequired
	}

	if s.overviews != nil {
		if overview, err := s.overviews.Get(ctx, session.UserID); err == nil {
			return overview, nil
		} else if err != models.ErrNotFound {
			s.logger.Warn("overview cache read failed", "error", err, "user_id", session.UserID)
		}
	}

	overview := &cache.AccountOverview{
		Plan:  models.PlanFree,
		Cycle: models.CycleMonthly,
	}

	if sub, err := s.subRepo.GetActiveByUserID(ctx, session.UserID); err == nil {
		overview.Plan = sub.Plan
		overview.Cycle = sub.Cycle
		end := sub.EndDate
		overview.PlanEndsAt = &end
	} else if err != models.ErrNotFound {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	ledger, err := s.creditRepo.GetByUserID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credits: %w", err)
	}
	overview.TotalCredits = ledger.TotalCredits
	overview.UsedCredits = ledger.UsedCredits
	overview.AvailableCredits = ledger.Available()

	count, err := s.textRepo.CountByUserID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	overview.ProjectCount = count

	if s.overviews != nil {
		if err := s.overviews.Set(ctx, session.UserID, overview); err != nil {
			s.logger.Warn("overview cache write failed", "error", err, "user_id", session.UserID)
		}
	}

	return overview, nil
}

func (s *accountService) ListProjects(ctx context.Context, session *Session, page, pageSize int) ([]models.HumanizedText, int64, error) {
	if !session.Authenticated() {
		return nil, 0, models.ErrAuthRequired
	}
	return s.textRepo.ListByUserID(ctx, session.UserID, page, pageSize)
}

func (s *accountService) GetProject(ctx context.Context, session *Session, id uuid.UUID) (*models.HumanizedText, error) {
	if !session.Authenticated() {
		return nil, models.ErrAuthRequired
	}
	return s.textRepo.GetByID(ctx, session.UserID, id)
}
