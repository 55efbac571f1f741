package httpx

import (
	"context"
	"net/http"

	"bookcatalog/internal/logger"
)

type contextKey string

const routeKey contextKey = "route"

// RequestIDFrom retrieves the request id from the request context.
func RequestIDFrom(r *http.Request) string {
	return logger.IDFrom(r.Context())
}

// ContextWithRequestID returns a new context carrying the request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return logger.ContextWithID(ctx, id)
}

type routeHolder struct {
	pattern string
}

func contextWithRouteHolder(ctx context.Context) (context.Context, *routeHolder) {
	h := &routeHolder{}
	return context.WithValue(ctx, routeKey, h), h
}

// SetRoute records the matched route pattern so outer middleware can label
// logs and metrics with it.
func SetRoute(r *http.Request, pattern string) {
	if h, ok := r.Context().Value(routeKey).(*routeHolder); ok {
		h.pattern = pattern
	}
}
