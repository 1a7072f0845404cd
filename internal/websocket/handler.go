package websocket

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/repositories"
	"github.com/rohan-darji/ai-humanizer/internal/domain/services"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/progress"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler streams payment-progress updates for one plan-change attempt. The
// client connects with the payment id in the path and a bearer token in the
// Authorization header or a token query parameter, and receives JSON
// progress messages until the attempt reaches a terminal state.
type Handler struct {
	feed     *progress.Feed
	auth     services.AuthService
	payments repositories.PaymentRepository
	logger   *slog.Logger
}

func NewHandler(feed *progress.Feed, auth services.AuthService, payments repositories.PaymentRepository, logger *slog.Logger) *Handler {
	return &Handler{feed: feed, auth: auth, payments: payments, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	urlPath := strings.TrimPrefix(r.URL.Path, "/stream/payments/")
	paymentID, err := uuid.Parse(strings.Split(urlPath, "/")[0])
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}

	token := bearerToken(r)
	if token == "" {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	claims, err := h.auth.ValidateToken(token)
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	// Progress feeds are account-scoped like every other payment read.
	if _, err := h.payments.GetByID(r.Context(), claims.UserID, paymentID); err != nil {
		if err == models.ErrNotFound {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}
		h.logger.Warn("payment lookup failed", "payment_id", paymentID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.logger.Info("payment stream opened",
		"payment_id", paymentID, "user_id", claims.UserID)

	ctx := r.Context()
	updates, err := h.feed.Subscribe(ctx, paymentID)
	if err != nil {
		h.logger.Warn("progress subscription failed", "payment_id", paymentID, "error", err)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscription failed"),
			time.Now().Add(writeWait))
		return
	}

	// Drain client frames so close messages and pongs are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case update, ok := <-updates:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(update); err != nil {
				return
			}
			if update.State.Terminal() {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(update.State)),
					time.Now().Add(writeWait))
				return
			}
		}
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			return token
		}
		return ""
	}
	// Browsers cannot set headers on websocket dials.
	return r.URL.Query().Get("token")
}
