// Package httptransport is the thin HTTP layer. It delegates to the
// verification service without embedding business logic so transport concerns
// remain isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authmw "tokengate/pkg/platform/middleware/auth"
	"tokengate/pkg/platform/middleware/requestid"
	"tokengate/pkg/platform/middleware/requesttime"
)

// NewRouter wires the public endpoints and the shared middleware chain. The
// audit handler is optional: hosts that only need the verify endpoint pass
// nil and no authenticated routes are mounted.
func NewRouter(h *VerifyHandler, auditH *AuditHandler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Register(r)

	if auditH != nil {
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(auditH.validator, logger))
			r.Get("/auth/decisions", auditH.HandleList)
		})
	}
	return r
}
