package websocket

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
	"github.com/rohan-darji/ai-humanizer/internal/domain/services"
	"github.com/rohan-darji/ai-humanizer/internal/infrastructure/progress"
)

type stubAuth struct {
	claims *services.TokenClaims
}

func (s *stubAuth) Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) DeleteAccount(ctx context.Context, session *services.Session) error {
	return errors.New("not implemented")
}

func (s *stubAuth) ValidateToken(token string) (*services.TokenClaims, error) {
	if token != "valid-token" {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

type stubPaymentRepo struct {
	owner int64
	id    uuid.UUID
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	return nil
}

func (s *stubPaymentRepo) GetByID(ctx context.Context, userID int64, id uuid.UUID) (*models.Payment, error) {
	if userID != s.owner || id != s.id {
		return nil, models.ErrNotFound
	}
	return &models.Payment{ID: id, UserID: userID, State: models.StateAwaitingPayment}, nil
}

func (s *stubPaymentRepo) ListByUserID(ctx context.Context, userID int64) ([]models.Payment, error) {
	return nil, nil
}

func (s *stubPaymentRepo) UpdateState(ctx context.Context, id uuid.UUID, state models.TransitionState, failReason *string) error {
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStreamRejectsInvalidPaymentID(t *testing.T) {
	h := NewHandler(nil, &stubAuth{claims: &services.TokenClaims{UserID: 1}}, &stubPaymentRepo{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/stream/payments/not-a-uuid?token=valid-token", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamRequiresToken(t *testing.T) {
	h := NewHandler(nil, &stubAuth{}, &stubPaymentRepo{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/stream/payments/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStreamRejectsForeignPayment(t *testing.T) {
	paymentID := uuid.New()
	auth := &stubAuth{claims: &services.TokenClaims{UserID: 2}}
	h := NewHandler(nil, auth, &stubPaymentRepo{owner: 1, id: paymentID}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/stream/payments/"+paymentID.String()+"?token=valid-token", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamDeliversOwnUpdates(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	feed := progress.NewFeed(client)

	paymentID := uuid.New()
	auth := &stubAuth{claims: &services.TokenClaims{UserID: 1}}
	h := NewHandler(feed, auth, &stubPaymentRepo{owner: 1, id: paymentID}, testLogger())

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/stream/payments/" + paymentID.String() + "?token=valid-token"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// The server subscribes after the upgrade; republish until the client
	// sees an update.
	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = feed.Publish(context.Background(), &models.PaymentProgress{
					PaymentID: paymentID,
					State:     models.StatePlanApplied,
					Percent:   100,
					Message:   "Your subscription is now active",
				})
			}
		}
	}()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var update models.PaymentProgress
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, paymentID, update.PaymentID)
	assert.Equal(t, models.StatePlanApplied, update.State)
	assert.True(t, update.State.Terminal())
}
