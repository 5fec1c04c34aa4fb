package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/quizmaker-backend/internal/config"
	quizsvc "github.com/heartmarshall/quizmaker-backend/internal/service/quiz"
	"github.com/heartmarshall/quizmaker-backend/internal/service/quizbuilder"
	"github.com/heartmarshall/quizmaker-backend/internal/transport/middleware"
	"github.com/heartmarshall/quizmaker-backend/internal/transport/rest"
)

// Services are the components the HTTP API is assembled from.
type Services struct {
	Store     Store
	StoreName string
	Builder   *quizbuilder.Builder
	Sessions  *quizbuilder.Registry
	Quizzes   *quizsvc.Service
	// Limiter is optional; nil disables rate limiting.
	Limiter *middleware.RateLimiter
}

// NewHTTPHandler builds the routed and middleware-wrapped API handler.
func NewHTTPHandler(logger *slog.Logger, cfg *config.Config, svc Services) http.Handler {
	mux := http.NewServeMux()

	health := rest.NewHealthHandler(svc.Store, svc.StoreName, BuildVersion())
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	rest.NewQuizSessionHandler(svc.Builder, svc.Sessions, svc.Quizzes, logger).Register(mux)
	rest.NewQuizHandler(svc.Quizzes, logger).Register(mux)

	var limit middleware.Middleware
	if svc.Limiter != nil {
		limit = svc.Limiter.Limit(cfg.RateLimit.PerMinute)
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limit,
	)(mux)
}
