package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

type Type string

const (
	TypeListingSubmitted Type = "listing.submitted"
	TypeOrderReceived    Type = "order.received"
	TypeOrderCancelled   Type = "order.cancelled"
)

// Event is a storefront activity record. It is informational only; the
// backend stays the source of truth.
type Event struct {
	EventID   string          `json:"event_id"`
	Type      Type            `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	OrderID   string          `json:"order_id,omitempty"`
	Listing   *domain.Listing `json:"listing,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewEvent(t Type, sessionID string) Event {
	return Event{
		EventID:   uuid.NewString(),
		Type:      t,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
