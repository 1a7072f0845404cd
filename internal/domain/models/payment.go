package models

import (
	"time"

	"github.com/google/uuid"
)

// TransitionState is the lifecycle of one plan-change attempt. A paid attempt
// walks awaiting_payment -> payment_succeeded -> plan_applied; a declined one
// ends at payment_failed with no plan or ledger mutation. Free-tier selection
// jumps straight to plan_applied.
type TransitionState string

const (
	StateIdle             TransitionState = "idle"
	StateAwaitingPayment  TransitionState = "awaiting_payment"
	StatePaymentSucceeded TransitionState = "payment_succeeded"
	StatePaymentFailed    TransitionState = "payment_failed"
	StatePlanApplied      TransitionState = "plan_applied"
)

func (s TransitionState) Terminal() bool {
	return s == StatePlanApplied || s == StatePaymentFailed
}

// Payment is one invoice row in the dashboard's billing history.
type Payment struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      int64           `json:"user_id" db:"user_id"`
	Plan        PlanType        `json:"plan_type" db:"plan_type"`
	Cycle       BillingCycle    `json:"billing_cycle" db:"billing_cycle"`
	AmountCents int64           `json:"amount_cents" db:"amount_cents"`
	State       TransitionState `json:"state" db:"state"`
	FailReason  *string         `json:"fail_reason,omitempty" db:"fail_reason"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// PaymentProgress is one step of the simulated collection, published to the
// progress feed while an attempt is in awaiting_payment.
type PaymentProgress struct {
	PaymentID uuid.UUID       `json:"payment_id"`
	State     TransitionState `json:"state"`
	Percent   int             `json:"percent"`
	Message   string          `json:"message"`
	Sequence  int64           `json:"sequence"`
	Timestamp time.Time       `json:"timestamp"`
}
