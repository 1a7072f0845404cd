package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

// Feed publishes payment-progress updates over redis pub/sub so websocket
// subscribers can watch a plan-change attempt live. Each payment gets its own
// channel plus a monotonic sequence so clients can detect dropped messages.
type Feed struct {
	client *redis.Client
}

func NewFeed(client *redis.Client) *Feed {
	return &Feed{client: client}
}

func channelFor(paymentID uuid.UUID) string {
	return fmt.Sprintf("payment_updates:%s", paymentID)
}

func (f *Feed) Publish(ctx context.Context, update *models.PaymentProgress) error {
	if update.Timestamp.IsZero() {
		update.Timestamp = time.Now()
	}

	seqKey := fmt.Sprintf("payment_seq:%s", update.PaymentID)
	seq, err := f.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return fmt.Errorf("failed to increment progress sequence: %w", err)
	}
	update.Sequence = seq

	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal progress update: %w", err)
	}

	if err := f.client.Publish(ctx, channelFor(update.PaymentID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish progress update: %w", err)
	}

	// Sequence keys are per-attempt scratch state; let them expire.
	f.client.Expire(ctx, seqKey, time.Hour)

	return nil
}

// Subscribe returns a channel of progress updates for one payment attempt.
// The subscription closes when ctx is cancelled.
func (f *Feed) Subscribe(ctx context.Context, paymentID uuid.UUID) (<-chan models.PaymentProgress, error) {
	sub := f.client.Subscribe(ctx, channelFor(paymentID))

	// Force the subscription to be established before returning so callers
	// don't miss the first update.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to progress feed: %w", err)
	}

	out := make(chan models.PaymentProgress, 16)
	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var update models.PaymentProgress
				if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
					continue
				}
				select {
				case out <- update:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
