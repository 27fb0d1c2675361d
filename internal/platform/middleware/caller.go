package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
)

// Verifier validates a bearer token and returns the caller address it
// asserts.
type Verifier interface {
	Verify(tokenString string) (models.Address, error)
}

type callerKey struct{}

// Caller retrieves the authenticated caller address from the context. Empty
// means the request never passed RequireCaller.
func Caller(ctx context.Context) models.Address {
	if addr, ok := ctx.Value(callerKey{}).(models.Address); ok {
		return addr
	}
	return ""
}

// WithCaller injects a caller address directly. Handler tests use this to
// skip token minting.
func WithCaller(ctx context.Context, addr models.Address) context.Context {
	return context.WithValue(ctx, callerKey{}, addr.Canonical())
}

// RequireCaller authenticates the request's bearer token and stores the
// verified caller address in the context. Requests without a valid token
// are rejected with 401 before reaching any handler.
func RequireCaller(verifier Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			addr, err := verifier.Verify(tokenString)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized request",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), addr)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"` + message + `"}`))
}
