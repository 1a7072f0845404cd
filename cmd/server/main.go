package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rohan-darji/ai-humanizer/internal/config"
	"github.com/rohan-darji/ai-humanizer/internal/domain/services"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/cache"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/database"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/engine"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/payments"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/progress"
	httpapi "github.com/rohan-darji/ai-humanizer/internal/interfaces/http"
	ws "github.com/rohan-darji/ai-humanizer/internal/websocket"
)

func main() {
	cfg := config.Load()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.NewPostgresConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	userRepo := database.NewUserRepository(db)
	subRepo := database.NewSubscriptionRepository(db)
	creditRepo := database.NewCreditRepository(db)
	textRepo := database.NewTextRepository(db)
	paymentRepo := database.NewPaymentRepository(db)

	overviewCache := cache.NewOverviewCache(redisClient.Client)
	feed := progress.NewFeed(redisClient.Client)
	collector := payments.NewSimulatedCollector(feed, cfg.Billing.PaymentStepInterval)
	stubEngine := engine.NewStubEngine(cfg.Engine.ProcessingDelay)

	jwtService := services.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiration)*time.Second)
	authService := services.NewAuthService(userRepo, subRepo, jwtService)
	humanizerService := services.NewHumanizerService(creditRepo, stubEngine, overviewCache, logger)
	billingService := services.NewBillingService(subRepo, creditRepo, paymentRepo, collector, feed, overviewCache, logger)
	accountService := services.NewAccountService(subRepo, creditRepo, textRepo, overviewCache, logger)

	wsHandler := ws.NewHandler(feed, authService, paymentRepo, logger)

	router := httpapi.NewRouter(authService, humanizerService, billingService, accountService, wsHandler, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	logger.Info("server started", "port", cfg.Server.Port, "environment", cfg.Server.Environment)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
