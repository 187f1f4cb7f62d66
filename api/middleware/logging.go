package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/angelmondragon/tradelink-backend/pkg/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging emits one structured line per request with method, path, status,
// and latency, carrying the request id into the context logger.
func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			ctx := r.Context()
			if requestID := RequestIDFromContext(ctx); requestID != "" {
				ctx = logg.WithRequestID(ctx, requestID)
			}
			ctx = logg.WithFields(ctx, map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			next.ServeHTTP(recorder, r.WithContext(ctx))

			doneCtx := logg.WithFields(ctx, map[string]any{
				"status":      recorder.status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			logg.Info(doneCtx, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		})
	}
}
