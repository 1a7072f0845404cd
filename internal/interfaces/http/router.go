package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rohan-darji/ai-humanizer/internal/domain/services"
	"github.com/rohan-darji/ai-humanizer/internal/interfaces/http/handlers"
	"github.com/rohan-darji/ai-humanizer/internal/interfaces/http/middleware"
	ws "github.com/rohan-darji/ai-humanizer/internal/websocket"
)

// NewRouter wires every endpoint. The humanize endpoint sits behind optional
// auth so the anonymous free-trial path works; everything account-scoped
// requires a token.
func NewRouter(
	authService services.AuthService,
	humanizer services.HumanizerService,
	billing services.BillingService,
	accounts services.AccountService,
	wsHandler *ws.Handler,
	logger *slog.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "ai-humanizer",
			"time":    time.Now(),
		})
	})

	authHandler := handlers.NewAuthHandler(authService)
	humanizeHandler := handlers.NewHumanizeHandler(humanizer)
	billingHandler := handlers.NewBillingHandler(billing)
	accountHandler := handlers.NewAccountHandler(accounts)

	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)
	router.GET("/api/billing/plans", billingHandler.Plans)

	optional := router.Group("/api", middleware.OptionalAuthMiddleware(authService))
	optional.POST("/humanize", humanizeHandler.Humanize)
	optional.POST("/humanize/estimate", humanizeHandler.Estimate)

	api := router.Group("/api", middleware.JWTAuthMiddleware(authService))
	api.GET("/texts", accountHandler.ListProjects)
	api.GET("/texts/:id", accountHandler.GetProject)
	api.GET("/account/overview", accountHandler.Overview)
	api.DELETE("/account", authHandler.DeleteAccount)
	api.POST("/billing/checkout", billingHandler.Checkout)
	api.GET("/billing/subscription", billingHandler.GetSubscription)
	api.GET("/billing/payments", billingHandler.ListPayments)
	api.GET("/billing/payments/:id", billingHandler.GetPayment)

	if wsHandler != nil {
		router.GET("/stream/payments/:payment_id", gin.WrapH(wsHandler))
	}

	return router
}
