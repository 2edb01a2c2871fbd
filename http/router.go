package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Loans   *LoanHandler
	Tenures *TenureRecommendationHandler
	Limiter *RateLimiter
	Logger  *zap.Logger
}

// NewRouter wires the API routes. Everything under /loan is rate limited
// per client address.
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Health)

	r.Route("/loan", func(r chi.Router) {
		r.Use(RateLimitMiddleware(deps.Limiter, logger))
		r.Post("/calculate", deps.Loans.CalculateLoan)
		r.Post("/compare", deps.Loans.CompareModes)
		r.Post("/export", deps.Loans.ExportSchedule)
		r.Post("/recommend-tenure", deps.Tenures.RecommendTenure)
	})

	return r
}
