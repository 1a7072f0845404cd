package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

const overviewTTL = 5 * time.Minute

// AccountOverview is the dashboard header payload: current plan, credit
// balance and project count.
type AccountOverview struct {
	Plan             models.PlanType     `json:"plan_type"`
	Cycle            models.BillingCycle `json:"billing_cycle"`
	PlanEndsAt       *time.Time          `json:"plan_ends_at,omitempty"`
	TotalCredits     int64               `json:"total_credits"`
	UsedCredits      int64               `json:"used_credits"`
	AvailableCredits int64               `json:"available_credits"`
	ProjectCount     int64               `json:"project_count"`
}

// OverviewCache keeps the computed overview per user. Entries are dropped on
// every debit and plan change, so staleness is bounded by the TTL only for
// reads that raced an invalidation.
type OverviewCache struct {
	client *redis.Client
}

func NewOverviewCache(client *redis.Client) *OverviewCache {
	return &OverviewCache{client: client}
}

func overviewKey(userID int64) string {
	return fmt.Sprintf("account_overview:%d", userID)
}

func (c *OverviewCache) Get(ctx context.Context, userID int64) (*AccountOverview, error) {
	data, err := c.client.Get(ctx, overviewKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read overview cache: %w", err)
	}

	var overview AccountOverview
	if err := json.Unmarshal(data, &overview); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached overview: %w", err)
	}
	return &overview, nil
}

func (c *OverviewCache) Set(ctx context.Context, userID int64, overview *AccountOverview) error {
	data, err := json.Marshal(overview)
	if err != nil {
		return fmt.Errorf("failed to marshal overview: %w", err)
	}

	if err := c.client.Set(ctx, overviewKey(userID), data, overviewTTL).Err(); err != nil {
		return fmt.Errorf("failed to write overview cache: %w", err)
	}
	return nil
}

func (c *OverviewCache) Invalidate(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, overviewKey(userID)).Err()
}
