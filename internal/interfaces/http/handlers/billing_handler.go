package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/services"
	"github.com/rohan-darji/ai-humanizer/internal/interfaces/http/middleware"
)

type BillingHandler struct {
	billing services.BillingService
}

func NewBillingHandler(billing services.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// Plans serves the public pricing catalog for one billing cycle
// (?cycle=monthly|yearly, monthly by default).
func (h *BillingHandler) Plans(c *gin.Context) {
	cycleParam := c.DefaultQuery("cycle", string(models.CycleMonthly))
	cycle, err := models.ParseBillingCycle(cycleParam)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": models.PlanCatalog(cycle)})
}

type checkoutRequest struct {
	Plan  string `json:"plan" binding:"required"`
	Cycle string `json:"billing_cycle" binding:"required"`
}

// Checkout starts a plan-change attempt. Paid plans return immediately with
// the attempt in awaiting_payment; the caller polls the payment or watches
// the progress stream.
func (h *BillingHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := models.ParsePlanType(req.Plan)
	if err != nil {
		respondError(c, err)
		return
	}
	cycle, err := models.ParseBillingCycle(req.Cycle)
	if err != nil {
		respondError(c, err)
		return
	}

	session := middleware.GetSession(c)
	payment, err := h.billing.StartPlanChange(c.Request.Context(), session, plan, cycle)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusAccepted
	if payment.State == models.StatePlanApplied {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"payment": payment})
}

func (h *BillingHandler) GetSubscription(c *gin.Context) {
	session := middleware.GetSession(c)
	sub, err := h.billing.GetSubscription(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

func (h *BillingHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	session := middleware.GetSession(c)
	payment, err := h.billing.GetPayment(c.Request.Context(), session, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

func (h *BillingHandler) ListPayments(c *gin.Context) {
	session := middleware.GetSession(c)
	payments, err := h.billing.ListPayments(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
