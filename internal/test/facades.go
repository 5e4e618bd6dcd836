package test

import (
	"context"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn     func(context.Context, usecase.CreateOrderInput) (*model.Order, error)
	OrderFn      func(context.Context, int64) (*model.Order, error)
	OrdersFn     func(context.Context, model.OrderScope, int64) ([]model.Order, error)
	TransitionFn func(context.Context, usecase.TransitionInput) (*model.Order, error)
	QRFn         func(int64, int64) ([]byte, error)
}

// CreateOrder delegates to the override or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	return &model.Order{ID: 1, Table: in.Table, State: model.OrderStateCreated}, nil
}

// Order delegates to the override or returns a default order.
func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, State: model.OrderStateCreated}, nil
}

// Orders returns predefined orders for the scope.
func (s OrderFacadeStub) Orders(ctx context.Context, scope model.OrderScope, callerID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, scope, callerID)
	}
	return []model.Order{{ID: 1}}, nil
}

// RequestTransition delegates to the override or echoes the target state.
func (s OrderFacadeStub) RequestTransition(ctx context.Context, in usecase.TransitionInput) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, in)
	}
	return &model.Order{ID: in.OrderID, State: in.Target}, nil
}

// PaymentQR returns configured bytes or a placeholder image.
func (s OrderFacadeStub) PaymentQR(orderID, amount int64) ([]byte, error) {
	if s.QRFn != nil {
		return s.QRFn(orderID, amount)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

// PaymentFacadeStub simulates payment operations.
type PaymentFacadeStub struct {
	RegisterFn func(context.Context, usecase.RegisterPaymentInput) (*model.Payment, error)
	PaymentFn  func(context.Context, int64) (*model.Payment, error)
}

// RegisterPayment delegates to the override or returns a completed payment.
func (s PaymentFacadeStub) RegisterPayment(ctx context.Context, in usecase.RegisterPaymentInput) (*model.Payment, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.Payment{ID: 1, OrderID: in.OrderID, Amount: in.Amount, Method: in.Method, Status: model.PaymentStatusCompleted}, nil
}

// Payment delegates to the override or returns a completed payment.
func (s PaymentFacadeStub) Payment(ctx context.Context, orderID int64) (*model.Payment, error) {
	if s.PaymentFn != nil {
		return s.PaymentFn(ctx, orderID)
	}
	return &model.Payment{ID: 1, OrderID: orderID, Status: model.PaymentStatusCompleted}, nil
}

// RestaurantFacadeStub aggregates facade dependencies for HTTP layer tests.
type RestaurantFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
}
