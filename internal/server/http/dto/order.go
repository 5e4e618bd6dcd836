package dto

import (
	"time"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// CreateOrderItemRequest is one requested product line.
type CreateOrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// CreateOrderRequest describes a new order payload.
type CreateOrderRequest struct {
	Table string                   `json:"table"`
	Items []CreateOrderItemRequest `json:"items"`
	Notes string                   `json:"notes"`
}

// TransitionRequest asks for one lifecycle transition.
type TransitionRequest struct {
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// OrderItemResponse is one priced line of an order snapshot.
type OrderItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// HistoryEntryResponse is one recorded state change.
type HistoryEntryResponse struct {
	State     string    `json:"state"`
	ChangedAt time.Time `json:"changed_at"`
}

// OrderResponse is the full order snapshot returned by every order endpoint.
type OrderResponse struct {
	ID           int64                  `json:"id"`
	Table        string                 `json:"table"`
	State        string                 `json:"state"`
	Items        []OrderItemResponse    `json:"items"`
	Total        int64                  `json:"total"`
	Notes        string                 `json:"notes,omitempty"`
	CancelReason string                 `json:"cancel_reason,omitempty"`
	Version      int64                  `json:"version"`
	Payment      *PaymentResponse       `json:"payment,omitempty"`
	History      []HistoryEntryResponse `json:"history"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// NewOrderResponse maps an order snapshot onto the wire shape.
func NewOrderResponse(order model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	history := make([]HistoryEntryResponse, 0, len(order.History))
	for _, entry := range order.History {
		history = append(history, HistoryEntryResponse{State: string(entry.State), ChangedAt: entry.ChangedAt})
	}
	resp := OrderResponse{
		ID:           order.ID,
		Table:        order.Table,
		State:        string(order.State),
		Items:        items,
		Total:        order.Total,
		Notes:        order.Notes,
		CancelReason: order.CancelReason,
		Version:      order.Version,
		History:      history,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	if order.Payment != nil {
		payment := NewPaymentResponse(*order.Payment)
		resp.Payment = &payment
	}
	return resp
}

// NewOrderResponses maps a list of snapshots.
func NewOrderResponses(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, NewOrderResponse(order))
	}
	return out
}
