package httpx

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"bookcatalog/internal/logger"
)

func RecoveryMiddleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.For(r.Context(), log).
						WithField("stack", string(debug.Stack())).
						Errorf("panic recovered: %v", err)

					var wroteHeader bool
					if rw, ok := w.(*responseWriter); ok {
						wroteHeader = rw.wroteHeader()
					}

					if !wroteHeader {
						JSONInternalError(w)
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
