package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/angelmondragon/tradelink-backend/api/responses"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
	"github.com/angelmondragon/tradelink-backend/pkg/redis"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	idempotencyTTL       = 24 * time.Hour
)

// Idempotency guards mutating endpoints against double submission. A reused
// key with the same payload means the client retried a request that already
// succeeded; a reused key with a different payload is a client bug. Both are
// rejected. Keys are released when the guarded handler fails so the client
// can retry cleanly.
func Idempotency(store redis.IdempotencyStore, scope string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyKeyHeader)
			if key == "" || store == nil {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(r.Context(), w, logg, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading request body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			digest := sha256.Sum256(body)
			storeKey := store.IdempotencyKey(scope, key)
			stored, err := store.SetNX(r.Context(), storeKey, hex.EncodeToString(digest[:]), idempotencyTTL)
			if err != nil {
				responses.WriteError(r.Context(), w, logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "idempotency store unavailable"))
				return
			}
			if !stored {
				responses.WriteError(r.Context(), w, logg, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key already used").
					WithDetails(map[string]any{"scope": scope}))
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			// A failed request must not burn the key.
			if recorder.status >= http.StatusBadRequest {
				if err := store.Del(r.Context(), storeKey); err != nil {
					logg.Warn(r.Context(), "releasing idempotency key failed")
				}
			}
		})
	}
}
