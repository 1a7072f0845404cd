package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rohan-darji/ai-humanizer/internal/domain/services"
	"github.com/rohan-darji/ai-humanizer/internal/interfaces/http/middleware"
)

type AccountHandler struct {
	accounts services.AccountService
}

func NewAccountHandler(accounts services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Overview(c *gin.Context) {
	session := middleware.GetSession(c)
	overview, err := h.accounts.Overview(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *AccountHandler) ListProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	session := middleware.GetSession(c)
	texts, total, err := h.accounts.ListProjects(c.Request.Context(), session, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":  texts,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *AccountHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	session := middleware.GetSession(c)
	text, err := h.accounts.GetProject(c.Request.Context(), session, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, text)
}
