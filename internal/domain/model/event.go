package model

import "time"

// EventKind labels a broadcast/audit event.
type EventKind string

const (
	EventOrderCreated      EventKind = "order_created"
	EventOrderTransitioned EventKind = "order_transitioned"
	EventPaymentRegistered EventKind = "payment_registered"
)

// Event carries the snapshot produced by an accepted mutation. Delivery is
// best-effort and at-most-once; subscribers resynchronize by polling.
type Event struct {
	Kind  EventKind
	Order Order
	At    time.Time
}
