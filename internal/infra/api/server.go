package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"course-marketplace/internal/domain/ports/adapter"
	"course-marketplace/internal/infra/redis"
	"course-marketplace/internal/usecase"
)

// OrderLimiter caps order creation per user over a fixed one-minute window.
type OrderLimiter struct {
	rl    *redis.RateLimiter
	limit int
}

func NewOrderLimiter(rl *redis.RateLimiter, perMinute int) *OrderLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &OrderLimiter{rl: rl, limit: perMinute}
}

func (l *OrderLimiter) AllowOrder(ctx context.Context, userID string) (bool, error) {
	return l.rl.Allow(ctx, redis.OrderKey(userID), l.limit, time.Minute)
}

type Server struct {
	catalogUC     usecase.CatalogUseCase
	checkoutUC    usecase.CheckoutUseCase
	entitlementUC usecase.EntitlementUseCase
	settingsUC    usecase.SettingsUseCase
	verifier      adapter.TokenVerifier
	limiter       *OrderLimiter
	timeout       time.Duration
	log           *zerolog.Logger
}

func NewServer(
	catalogUC usecase.CatalogUseCase,
	checkoutUC usecase.CheckoutUseCase,
	entitlementUC usecase.EntitlementUseCase,
	settingsUC usecase.SettingsUseCase,
	verifier adapter.TokenVerifier,
	limiter *OrderLimiter,
	timeout time.Duration,
	logger *zerolog.Logger,
) *Server {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Server{
		catalogUC:     catalogUC,
		checkoutUC:    checkoutUC,
		entitlementUC: entitlementUC,
		settingsUC:    settingsUC,
		verifier:      verifier,
		limiter:       limiter,
		timeout:       timeout,
		log:           logger,
	}
}

// Router assembles the public API. Checkout, verification, enrollment and
// entitlement reads all sit behind bearer auth; the catalog and the settings
// read are anonymous, settings writes are admin-only.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(TraceID())
	r.Use(Recover(s.log))
	r.Use(RequestLog(s.log))
	r.Use(Timeout(s.timeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/courses", s.handleListCourses)
		r.Get("/settings", s.handleGetSettings)

		r.Group(func(r chi.Router) {
			r.Use(Authenticated(s.verifier))

			r.Post("/payment/order", s.handleCreateOrder)
			r.Post("/payment/verify", s.handleVerifyPayment)
			r.Post("/enroll/free", s.handleFreeEnroll)
			r.Get("/me/entitlements", s.handleMyEntitlements)
			r.Get("/me/access/{courseID}", s.handleAccessCheck)

			r.Group(func(r chi.Router) {
				r.Use(AdminOnly())
				r.Post("/settings", s.handleUpdateSettings)
			})
		})
	})

	return r
}
