package services

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/repositories"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/engine"
)

const DefaultProjectTitle = "Untitled Project"

// OverviewInvalidator drops any cached account overview after a mutation.
type OverviewInvalidator interface {
	Invalidate(ctx context.Context, userID int64) error
}

type HumanizerService interface {
	CostOf(text string) int64
	Humanize(ctx context.Context, session *Session, text, title string) (*HumanizeResult, error)
}

type HumanizeResult struct {
	Output      string                `json:"humanized_text"`
	CreditsUsed int64                 `json:"credits_used"`
	Record      *models.HumanizedText `json:"record,omitempty"`
}

type humanizerService struct {
	creditRepo repositories.CreditRepository
	engine     engine.Engine
	cache      OverviewInvalidator
	logger     *slog.Logger
}

func NewHumanizerService(
	creditRepo repositories.CreditRepository,
	eng engine.Engine,
	cache OverviewInvalidator,
	logger *slog.Logger,
) HumanizerService {
	return &humanizerService{
		creditRepo: creditRepo,
		engine:     eng,
		cache:      cache,
		logger:     logger,
	}
}

// CostOf prices a request at 2 credits per started block of 100 characters.
// Empty text costs nothing.
func (s *humanizerService) CostOf(text string) int64 {
	n := int64(utf8.RuneCountInString(text))
	if n == 0 {
		return 0
	}
	return (n + 99) / 100 * 2
}

// Humanize runs one request through the usage gate. Anonymous sessions get
// the transformation without a ledger check and nothing is persisted. For
// authenticated sessions the debit and the usage record are committed
// together; any failure between them rolls both back.
func (s *humanizerService) Humanize(ctx context.Context, session *Session, text, title string) (*HumanizeResult, error) {
	cost := s.CostOf(text)

	if !session.Authenticated() {
		output, err := s.engine.Transform(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("transformation failed: %w", err)
		}
		return &HumanizeResult{Output: output, CreditsUsed: cost}, nil
	}

	// Cheap pre-check so we don't run the engine for a request that cannot
	// be afforded. The authoritative check happens again under the row lock
	// in DebitWithUsage.
	ledger, err := s.creditRepo.GetByUserID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credits: %w", err)
	}
	if cost > ledger.Available() {
		return nil, &models.InsufficientCreditsError{
			Needed:    cost,
			Available: ledger.Available(),
		}
	}

	output, err := s.engine.Transform(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("transformation failed: %w", err)
	}

	if title == "" {
		title = DefaultProjectTitle
	}

	record := &models.HumanizedText{
		UserID:        session.UserID,
		Title:         title,
		OriginalText:  text,
		HumanizedText: output,
		CreditsUsed:   cost,
	}

	if err := s.creditRepo.DebitWithUsage(ctx, record); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, session.UserID); err != nil {
			s.logger.Warn("failed to invalidate overview cache", "error", err, "user_id", session.UserID)
		}
	}

	return &HumanizeResult{Output: output, CreditsUsed: cost, Record: record}, nil
}
