package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokengate/internal/audit"
	authmw "tokengate/pkg/platform/middleware/auth"
)

type stubAudit struct {
	events []audit.Event
}

func (s *stubAudit) List(_ context.Context, _ string) ([]audit.Event, error) {
	return s.events, nil
}

type stubValidator struct {
	address string
}

func (s *stubValidator) ValidateToken(token string) (*authmw.SessionClaims, error) {
	if token != "good-token" {
		return nil, errors.New("invalid token")
	}
	return &authmw.SessionClaims{Address: s.address}, nil
}

func auditRouter(events []audit.Event) http.Handler {
	h := NewAuditHandler(&stubAudit{events: events}, &stubValidator{address: "addr1"})
	return NewRouter(NewVerifyHandler(&stubService{}, nil), h, nil)
}

func TestHandleAuditList(t *testing.T) {
	events := []audit.Event{{
		ID:        "evt-1",
		Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Decision:  "denied",
		Reason:    "address addr1 owns 4 of badges [1, 10] in collection 1, below the minimum 5",
	}}

	t.Run("authenticated request lists decisions", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/decisions", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		auditRouter(events).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Address   string               `json:"address"`
			Decisions []auditEventResponse `json:"decisions"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "addr1", resp.Address)
		require.Len(t, resp.Decisions, 1)
		assert.Equal(t, "denied", resp.Decisions[0].Decision)
		assert.Contains(t, resp.Decisions[0].Reason, "below the minimum 5")
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/decisions", nil)
		w := httptest.NewRecorder()
		auditRouter(events).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/decisions", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()
		auditRouter(events).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
