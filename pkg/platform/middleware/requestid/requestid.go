// Package requestid assigns each request a correlation ID so one
// verification can be traced across logs and audit events.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"tokengate/pkg/requestcontext"
)

// Header carries the request ID on responses and inbound overrides.
const Header = "X-Request-Id"

// Middleware reuses an inbound X-Request-Id when present, otherwise mints a
// fresh UUID, and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
