package models

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	UserID    int64        `json:"user_id" db:"user_id"`
	Plan      PlanType     `json:"plan_type" db:"plan_type"`
	Cycle     BillingCycle `json:"billing_cycle" db:"billing_cycle"`
	IsActive  bool         `json:"is_active" db:"is_active"`
	StartDate time.Time    `json:"start_date" db:"start_date"`
	EndDate   time.Time    `json:"end_date" db:"end_date"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}
