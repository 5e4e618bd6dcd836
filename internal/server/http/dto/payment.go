package dto

import (
	"time"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// RegisterPaymentRequest describes a payment registration payload.
// Amount is in minor currency units.
type RegisterPaymentRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

// PaymentResponse is the wire shape of a registered payment.
type PaymentResponse struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPaymentResponse maps a payment onto the wire shape.
func NewPaymentResponse(payment model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount,
		Method:    string(payment.Method),
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt,
	}
}
