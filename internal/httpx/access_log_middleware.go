package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"bookcatalog/internal/logger"
	"bookcatalog/internal/metrics"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int64
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.headerWritten {
		rw.statusCode = code
		rw.headerWritten = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

func (rw *responseWriter) wroteHeader() bool {
	return rw.headerWritten
}

// AccessLogMiddleware logs every request and records it in m. m may be nil.
func AccessLogMiddleware(log *logrus.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}
			ctx, route := contextWithRouteHolder(r.Context())

			next.ServeHTTP(rw, r.WithContext(ctx))

			duration := time.Since(start)
			pattern := route.pattern
			if pattern == "" {
				pattern = "unmatched"
			}
			m.ObserveRequest(r.Method, pattern, strconv.Itoa(rw.statusCode), duration)

			logger.For(r.Context(), log).WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"route":       pattern,
				"status":      rw.statusCode,
				"bytes":       rw.bytesWritten,
				"duration_ms": duration.Milliseconds(),
				"remote":      r.RemoteAddr,
			}).Info("http.request")
		})
	}
}
