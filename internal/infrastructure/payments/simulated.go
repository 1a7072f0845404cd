package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/progress"
)

// Collector is the external payment gateway. There is no real settlement
// behavior to integrate with; the contract is collect-or-fail.
type Collector interface {
	Collect(ctx context.Context, paymentID uuid.UUID, amountCents int64, cycle models.BillingCycle) error
}

// SimulatedCollector approves every charge after ten stepped progress ticks,
// publishing each tick to the progress feed. Cancelling the context before
// the last tick fails the collection.
type SimulatedCollector struct {
	feed         *progress.Feed
	stepInterval time.Duration
}

func NewSimulatedCollector(feed *progress.Feed, stepInterval time.Duration) *SimulatedCollector {
	return &SimulatedCollector{feed: feed, stepInterval: stepInterval}
}

func (c *SimulatedCollector) Collect(ctx context.Context, paymentID uuid.UUID, amountCents int64, cycle models.BillingCycle) error {
	ticker := time.NewTicker(c.stepInterval)
	defer ticker.Stop()

	for percent := 10; percent <= 100; percent += 10 {
		select {
		case <-ctx.Done():
			return models.ErrPaymentFailed
		case <-ticker.C:
		}

		message := "Verifying payment details..."
		if percent == 100 {
			message = "Payment confirmed"
		}

		if c.feed != nil {
			// Progress publishing is best effort; a lost tick must not fail
			// the charge itself.
			_ = c.feed.Publish(ctx, &models.PaymentProgress{
				PaymentID: paymentID,
				State:     models.StateAwaitingPayment,
				Percent:   percent,
				Message:   message,
			})
		}
	}

	return nil
}
