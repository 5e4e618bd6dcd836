package handlers

import (
	"context"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, model.Role, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*model.Order, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	Orders(ctx context.Context, scope model.OrderScope, callerID int64) ([]model.Order, error)
	RequestTransition(ctx context.Context, in usecase.TransitionInput) (*model.Order, error)
	PaymentQR(orderID, amount int64) ([]byte, error)
}

// PaymentFacade provides payment registration and lookup.
type PaymentFacade interface {
	RegisterPayment(ctx context.Context, in usecase.RegisterPaymentInput) (*model.Payment, error)
	Payment(ctx context.Context, orderID int64) (*model.Payment, error)
}

// RestaurantFacade aggregates the full set of operations used across handlers.
type RestaurantFacade interface {
	AuthFacade
	OrderFacade
	PaymentFacade
}
