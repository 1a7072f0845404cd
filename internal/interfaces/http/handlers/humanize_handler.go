package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rohan-darji/ai-humanizer/internal/domain/services"
	"github.com/rohan-darji/ai-humanizer/internal/interfaces/http/middleware"
)

type HumanizeHandler struct {
	humanizer services.HumanizerService
}

func NewHumanizeHandler(humanizer services.HumanizerService) *HumanizeHandler {
	return &HumanizeHandler{humanizer: humanizer}
}

type humanizeRequest struct {
	Text  string `json:"text" binding:"required"`
	Title string `json:"title"`
}

// Humanize accepts both authenticated and anonymous callers; only
// authenticated requests are debited and saved as projects.
func (h *HumanizeHandler) Humanize(c *gin.Context) {
	var req humanizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	session := middleware.GetSession(c)
	result, err := h.humanizer.Humanize(c.Request.Context(), session, req.Text, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Estimate prices a text without processing it, for the live cost hint in
// the editor.
func (h *HumanizeHandler) Estimate(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"credits_needed": h.humanizer.CostOf(req.Text)})
}
