package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// correlationHeader carries the request's correlation ID in both
// directions. Inbound values are trusted as-is so callers can stitch
// their own traces together.
const correlationHeader = "X-Correlation-ID"

type contextKey string

const correlationKey contextKey = "correlation_id"

// withCorrelationID assigns every request a correlation ID, reusing
// the caller's when present, and echoes it on the response.
func withCorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(correlationHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(correlationHeader, id)
		ctx := context.WithValue(r.Context(), correlationKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// correlationID returns the request's correlation ID, or "".
func correlationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey).(string)
	return id
}
