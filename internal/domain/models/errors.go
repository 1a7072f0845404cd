package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPlan   = errors.New("unknown plan type")
	ErrUnknownCycle  = errors.New("unknown billing cycle")
	ErrPaymentFailed = errors.New("payment failed")
	ErrAuthRequired  = errors.New("authentication required")
	ErrNotFound      = errors.New("not found")
)

// InsufficientCreditsError carries the balance the failed debit saw so the
// client can show "need X, have Y".
type InsufficientCreditsError struct {
	Needed    int64
	Available int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: need %d, have %d available", e.Needed, e.Available)
}

func IsInsufficientCredits(err error) bool {
	var ice *InsufficientCreditsError
	return errors.As(err, &ice)
}
