package services

import (
	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

// Session identifies the caller of a core operation. A nil session is the
// anonymous free-trial path; everything that gates on credits or ownership
// takes the session explicitly rather than reading ambient state.
type Session struct {
	UserID int64
	Email  string
	Plan   models.PlanType
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}
