// Package audit records every verification decision so an auditor can later
// reconstruct who was admitted or refused and why.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one verification decision. Keep it transport-agnostic so stores
// and sinks can fan out.
type Event struct {
	ID        string
	Timestamp time.Time
	RequestID string
	Address   string
	Decision  string // "accepted", "denied", "error"
	Reason    string
}

// Store is the append-only sink for events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByAddress(ctx context.Context, address string) ([]Event, error)
}

// Service captures structured audit events. It fills in identity and time
// defaults so callers only provide what they decided.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return s.store.Append(ctx, event)
}

func (s *Service) List(ctx context.Context, address string) ([]Event, error) {
	return s.store.ListByAddress(ctx, address)
}
