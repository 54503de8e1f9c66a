package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tokengate/internal/verification"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/platform/httputil"
)

// VerifyService is the slice of the verification service the handler needs.
type VerifyService interface {
	Verify(ctx context.Context, req verification.VerifyRequest) (*verification.VerifyResult, error)
}

// VerifyHandler wires the sign-in endpoint to the verification service.
type VerifyHandler struct {
	service VerifyService
	logger  *slog.Logger
}

func NewVerifyHandler(service VerifyService, logger *slog.Logger) *VerifyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VerifyHandler{service: service, logger: logger}
}

// Register mounts the verification endpoint on the router.
func (h *VerifyHandler) Register(r chi.Router) {
	r.Post("/auth/verify", h.HandleVerify)
}

type verifyRequest struct {
	Message    string       `json:"message"`
	Signature  string       `json:"signature"`
	Conditions conditionDTO `json:"conditions"`
}

type verifyResponse struct {
	Address string `json:"address"`
	Token   string `json:"token"`
}

// HandleVerify handles POST /auth/verify.
func (h *VerifyHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}
	if req.Message == "" || req.Signature == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "message and signature are required"))
		return
	}

	conditions, err := req.Conditions.toNode()
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInvalidInput, err.Error(), err))
		return
	}

	result, err := h.service.Verify(r.Context(), verification.VerifyRequest{
		Message:    req.Message,
		Signature:  req.Signature,
		Conditions: conditions,
	})
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.Error("verification failed", "error", err)
		}
		httputil.WriteError(w, err)
		return
	}

	if !result.Accepted {
		httputil.WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"error":             "policy_denied",
			"error_description": result.Reason,
			"address":           result.Address,
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, verifyResponse{Address: result.Address, Token: result.Token})
}
