package model

import "time"

// PaymentMethod is how a settled payment was made.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodQR   PaymentMethod = "QR"
)

// Valid reports whether the method is one of the supported kinds.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodQR:
		return true
	}
	return false
}

// PaymentStatus describes the state of a recorded payment fact.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment is a settlement fact recorded against exactly one order. At most
// one non-failed payment may exist per order, and its amount must equal the
// order total exactly. Amount is cents.
type Payment struct {
	ID        int64
	OrderID   int64
	Amount    int64
	Method    PaymentMethod
	Status    PaymentStatus
	CreatedAt time.Time
}
