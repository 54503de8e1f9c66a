// Package auth guards endpoints behind the session token minted on a
// successful verification.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"tokengate/pkg/requestcontext"
)

// SessionValidator validates a session token string.
type SessionValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// SessionClaims are the claims the middleware needs from the validator.
// Defined here rather than importing the token package so the middleware
// stays decoupled from the signing implementation.
type SessionClaims struct {
	Address string
	Nonce   string
	JTI     string
}

type contextKeyAddress struct{}

// ContextKeyAddress is exported for handlers and tests.
var ContextKeyAddress = contextKeyAddress{}

// GetAddress retrieves the authenticated address from the context.
func GetAddress(ctx context.Context) string {
	addr, ok := ctx.Value(ContextKeyAddress).(string)
	if !ok {
		return ""
	}
	return addr
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":%q,"error_description":%q}`, errCode, errDesc))
}

// RequireAuth rejects requests without a valid Bearer session token and
// stores the verified address in the request context for handlers.
func RequireAuth(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAddress, claims.Address)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
