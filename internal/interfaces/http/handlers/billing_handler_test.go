package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/services"
)

type stubBilling struct {
	payment *models.Payment
	sub     *models.Subscription
	err     error
}

func (s *stubBilling) StartPlanChange(ctx context.Context, session *services.Session, plan models.PlanType, cycle models.BillingCycle) (*models.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payment, nil
}

func (s *stubBilling) GetSubscription(ctx context.Context, session *services.Session) (*models.Subscription, error) {
	return s.sub, s.err
}

func (s *stubBilling) GetPayment(ctx context.Context, session *services.Session, id uuid.UUID) (*models.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payment, nil
}

func (s *stubBilling) ListPayments(ctx context.Context, session *services.Session) ([]models.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Payment{*s.payment}, nil
}

func newBillingRouter(stub *stubBilling) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("session", &services.Session{UserID: 1, Plan: models.PlanFree})
		c.Next()
	})
	h := NewBillingHandler(stub)
	r.GET("/api/billing/plans", h.Plans)
	r.POST("/api/billing/checkout", h.Checkout)
	r.GET("/api/billing/payments/:id", h.GetPayment)
	return r
}

func TestPlansCatalog(t *testing.T) {
	r := newBillingRouter(&stubBilling{})

	req := httptest.NewRequest(http.MethodGet, "/api/billing/plans?cycle=yearly", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Plans []models.PlanView `json:"plans"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Plans, 3)
}

func TestPlansRejectsUnknownCycle(t *testing.T) {
	r := newBillingRouter(&stubBilling{})

	req := httptest.NewRequest(http.MethodGet, "/api/billing/plans?cycle=weekly", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutPaidPlanAccepted(t *testing.T) {
	stub := &stubBilling{payment: &models.Payment{
		ID:          uuid.New(),
		UserID:      1,
		Plan:        models.PlanStandard,
		Cycle:       models.CycleMonthly,
		AmountCents: 1900,
		State:       models.StateAwaitingPayment,
	}}
	r := newBillingRouter(stub)

	w := doJSON(t, r, "/api/billing/checkout", gin.H{"plan": "standard", "billing_cycle": "monthly"})

	require.Equal(t, http.StatusAccepted, w.Code)
	var resp struct {
		Payment models.Payment `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StateAwaitingPayment, resp.Payment.State)
}

func TestCheckoutFreePlanCompletesInline(t *testing.T) {
	stub := &stubBilling{payment: &models.Payment{
		ID:     uuid.New(),
		UserID: 1,
		Plan:   models.PlanFree,
		Cycle:  models.CycleMonthly,
		State:  models.StatePlanApplied,
	}}
	r := newBillingRouter(stub)

	w := doJSON(t, r, "/api/billing/checkout", gin.H{"plan": "free", "billing_cycle": "monthly"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutRejectsUnknownPlan(t *testing.T) {
	r := newBillingRouter(&stubBilling{})

	w := doJSON(t, r, "/api/billing/checkout", gin.H{"plan": "enterprise", "billing_cycle": "monthly"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPaymentInvalidID(t *testing.T) {
	r := newBillingRouter(&stubBilling{})

	req := httptest.NewRequest(http.MethodGet, "/api/billing/payments/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPaymentNotFound(t *testing.T) {
	r := newBillingRouter(&stubBilling{err: models.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/billing/payments/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
