package api

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/metrics"
)

const maxBodyBytes = 1 << 20

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string
}

// NewServer wraps the router in the middleware chain and returns a server
// ready to ListenAndServe. The rate limiter's sweeper stops when ctx is done.
func NewServer(ctx context.Context, cfg ServerConfig, rt *Router, log *logrus.Logger, m *metrics.Metrics) *http.Server {
	limiter := httpx.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustedProxies)

	handler := httpx.Chain(rt,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log, m),
		httpx.RecoveryMiddleware(log),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		httpx.SecurityHeadersMiddleware,
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(maxBodyBytes),
	)

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
