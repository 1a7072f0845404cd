package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/repositories"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/payments"
)

// attemptTimeout bounds one background plan-change attempt, collection
// included.
const attemptTimeout = 2 * time.Minute

// ProgressPublisher pushes state updates for a payment attempt to whoever is
// watching (the websocket feed).
type ProgressPublisher interface {
	Publish(ctx context.Context, update *models.PaymentProgress) error
}

type BillingService interface {
	// StartPlanChange begins one plan-change attempt. The free tier needs no
	// payment and is applied before returning; paid tiers return immediately
	// with the attempt in awaiting_payment and complete in the background.
	StartPlanChange(ctx context.Context, session *Session, plan models.PlanType, cycle models.BillingCycle) (*models.Payment, error)

	GetSubscription(ctx context.Context, session *Session) (*models.Subscription, error)
	GetPayment(ctx context.Context, session *Session, id uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context, session *Session) ([]models.Payment, error)
}

type billingService struct {
	subRepo     repositories.SubscriptionRepository
	creditRepo  repositories.CreditRepository
	paymentRepo repositories.PaymentRepository
	collector   payments.Collector
	feed        ProgressPublisher
	cache       OverviewInvalidator
	logger      *slog.Logger
}

func NewBillingService(
	subRepo repositories.SubscriptionRepository,
	creditRepo repositories.CreditRepository,
	paymentRepo repositories.PaymentRepository,
	collector payments.Collector,
	feed ProgressPublisher,
	cache OverviewInvalidator,
	logger *slog.Logger,
) BillingService {
	return &billingService{
		subRepo:     subRepo,
		creditRepo:  creditRepo,
		paymentRepo: paymentRepo,
		collector:   collector,
		feed:        feed,
		cache:       cache,
		logger:      logger,
	}
}

func (s *billingService) StartPlanChange(ctx context.Context, session *Session, plan models.PlanType, cycle models.BillingCycle) (*models.Payment, error) {
	if !session.Authenticated() {
		return nil, models.ErrAuthRequired
	}

	payment := &models.Payment{
		UserID:      session.UserID,
		Plan:        plan,
		Cycle:       cycle,
		AmountCents: models.PriceCents(plan, cycle),
		State:       models.StateAwaitingPayment,
	}

	if plan == models.PlanFree {
		// No payment to collect; apply directly.
		if err := s.applyPlan(ctx, payment); err != nil {
			return nil, err
		}
		payment.State = models.StatePlanApplied
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return nil, fmt.Errorf("failed to record plan change: %w", err)
		}
		return payment, nil
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment attempt: %w", err)
	}

	// Detach from the request context: the attempt outlives the HTTP call
	// and is observed by polling or the progress feed. The goroutine owns
	// payment from here; the caller gets a snapshot so the response path
	// never races the background state writes.
	snapshot := *payment
	go func() {
		runCtx, cancel := context.WithTimeout(context.Background(), attemptTimeout)
		defer cancel()
		s.processAttempt(runCtx, payment)
	}()

	return &snapshot, nil
}

// processAttempt walks one paid attempt through the state machine:
// awaiting_payment -> payment_succeeded -> plan_applied, or payment_failed.
// Nothing before plan application mutates the subscription or the ledger, so
// a failed collection leaves both at their prior values.
func (s *billingService) processAttempt(ctx context.Context, payment *models.Payment) {
	// Collection honors the attempt deadline, but once it returns the
	// terminal state must be persisted even if that deadline has since
	// expired; a dead context here would strand the row in awaiting_payment.
	persistCtx := context.WithoutCancel(ctx)

	if err := s.collector.Collect(ctx, payment.ID, payment.AmountCents, payment.Cycle); err != nil {
		reason := err.Error()
		s.transition(persistCtx, payment, models.StatePaymentFailed, &reason)
		s.logger.Warn("payment collection failed",
			"payment_id", payment.ID, "user_id", payment.UserID, "error", err)
		return
	}

	s.transition(persistCtx, payment, models.StatePaymentSucceeded, nil)

	if err := s.applyPlan(persistCtx, payment); err != nil {
		// The charge went through but the plan could not be applied. Keep
		// the attempt in payment_succeeded with the reason recorded so it
		// can be reconciled; do not fake a failure that would suggest no
		// money moved.
		reason := err.Error()
		if uerr := s.paymentRepo.UpdateState(persistCtx, payment.ID, models.StatePaymentSucceeded, &reason); uerr != nil {
			s.logger.Error("failed to record apply error", "payment_id", payment.ID, "error", uerr)
		}
		s.logger.Error("failed to apply plan after successful payment",
			"payment_id", payment.ID, "user_id", payment.UserID, "error", err)
		return
	}

	s.transition(persistCtx, payment, models.StatePlanApplied, nil)
}

// applyPlan activates the new subscription and resets the ledger to the new
// plan's grant in one transaction.
func (s *billingService) applyPlan(ctx context.Context, payment *models.Payment) error {
	now := time.Now()
	sub := &models.Subscription{
		UserID:    payment.UserID,
		Plan:      payment.Plan,
		Cycle:     payment.Cycle,
		IsActive:  true,
		StartDate: now,
		EndDate:   now.Add(models.CycleDuration(payment.Cycle)),
	}

	if err := s.subRepo.ApplyPlanChange(ctx, sub, models.CreditGrant(payment.Plan)); err != nil {
		return fmt.Errorf("failed to apply plan change: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, payment.UserID); err != nil {
			s.logger.Warn("failed to invalidate overview cache", "error", err, "user_id", payment.UserID)
		}
	}
	return nil
}

func (s *billingService) transition(ctx context.Context, payment *models.Payment, state models.TransitionState, failReason *string) {
	payment.State = state
	payment.FailReason = failReason

	if err := s.paymentRepo.UpdateState(ctx, payment.ID, state, failReason); err != nil {
		s.logger.Error("failed to persist payment state",
			"payment_id", payment.ID, "state", state, "error", err)
	}

	if s.feed != nil {
		percent := 100
		message := "Payment completed successfully"
		switch state {
		case models.StatePaymentFailed:
			message = "Payment failed"
		case models.StatePlanApplied:
			message = "Your subscription is now active"
		}
		if err := s.feed.Publish(ctx, &models.PaymentProgress{
			PaymentID: payment.ID,
			State:     state,
			Percent:   percent,
			Message:   message,
		}); err != nil {
			s.logger.Warn("failed to publish payment progress", "payment_id", payment.ID, "error", err)
		}
	}
}

// GetSubscription returns the active subscription, synthesizing the implicit
// free tier when none exists.
func (s *billingService) GetSubscription(ctx context.Context, session *Session) (*models.Subscription, error) {
	if !session.Authenticated() {
		return nil, models.ErrAuthRequired
	}

	sub, err := s.subRepo.GetActiveByUserID(ctx, session.UserID)
	if err == models.ErrNotFound {
		return &models.Subscription{
			UserID:   session.UserID,
			Plan:     models.PlanFree,
			Cycle:    models.CycleMonthly,
			IsActive: true,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *billingService) GetPayment(ctx context.Context, session *Session, id uuid.UUID) (*models.Payment, error) {
	if !session.Authenticated() {
		return nil, models.ErrAuthRequired
	}
	return s.paymentRepo.GetByID(ctx, session.UserID, id)
}

func (s *billingService) ListPayments(ctx context.Context, session *Session) ([]models.Payment, error) {
	if !session.Authenticated() {
		return nil, models.ErrAuthRequired
	}
	return s.paymentRepo.ListByUserID(ctx, session.UserID)
}
