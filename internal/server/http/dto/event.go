package dto

import (
	"time"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// EventMessage is the wire shape of one pushed order event. Delivery is
// best-effort and at-most-once; clients reconcile via the list endpoints.
type EventMessage struct {
	Kind  string        `json:"kind"`
	Order OrderResponse `json:"order"`
	At    time.Time     `json:"at"`
}

// NewEventMessage maps a broadcast event onto the wire shape.
func NewEventMessage(event model.Event) EventMessage {
	return EventMessage{
		Kind:  string(event.Kind),
		Order: NewOrderResponse(event.Order),
		At:    event.At,
	}
}
