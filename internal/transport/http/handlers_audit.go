package httptransport

import (
	"context"
	"net/http"
	"time"

	"tokengate/internal/audit"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/platform/httputil"
	authmw "tokengate/pkg/platform/middleware/auth"
)

// AuditService is the slice of the audit service the handler needs.
type AuditService interface {
	List(ctx context.Context, address string) ([]audit.Event, error)
}

// AuditHandler exposes the decision trail for the authenticated address.
type AuditHandler struct {
	service   AuditService
	validator authmw.SessionValidator
}

func NewAuditHandler(service AuditService, validator authmw.SessionValidator) *AuditHandler {
	return &AuditHandler{service: service, validator: validator}
}

type auditEventResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId,omitempty"`
	Decision  string    `json:"decision"`
	Reason    string    `json:"reason"`
}

// HandleList handles GET /auth/decisions: the verification history of the
// address the session token was minted for.
func (h *AuditHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	addr := authmw.GetAddress(r.Context())
	if addr == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	events, err := h.service.List(r.Context(), addr)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "could not list decisions", err))
		return
	}

	out := make([]auditEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, auditEventResponse{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			RequestID: e.RequestID,
			Decision:  e.Decision,
			Reason:    e.Reason,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"address": addr, "decisions": out})
}
