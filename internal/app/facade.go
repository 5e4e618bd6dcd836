package app

import (
	"context"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/pkg/qr"
	"github.com/Josema-montano/FastFood-Admin/internal/usecase"
)

// RestaurantFacade aggregates the use cases behind one surface for the
// HTTP layer.
type RestaurantFacade struct {
	auth      *usecase.AuthUseCase
	lifecycle *usecase.LifecycleManager
	payments  *usecase.PaymentReconciler
	qr        *qr.Generator
}

// NewRestaurantFacade constructs RestaurantFacade.
func NewRestaurantFacade(auth *usecase.AuthUseCase, lifecycle *usecase.LifecycleManager, payments *usecase.PaymentReconciler, generator *qr.Generator) *RestaurantFacade {
	return &RestaurantFacade{auth: auth, lifecycle: lifecycle, payments: payments, qr: generator}
}

func (f *RestaurantFacade) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role)
	return token, err
}

func (f *RestaurantFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *RestaurantFacade) ParseToken(token string) (int64, model.Role, error) {
	return f.auth.ParseToken(token)
}

func (f *RestaurantFacade) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*model.Order, error) {
	return f.lifecycle.CreateOrder(ctx, in)
}

func (f *RestaurantFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.lifecycle.Order(ctx, id)
}

func (f *RestaurantFacade) Orders(ctx context.Context, scope model.OrderScope, callerID int64) ([]model.Order, error) {
	return f.lifecycle.Orders(ctx, scope, callerID)
}

func (f *RestaurantFacade) RequestTransition(ctx context.Context, in usecase.TransitionInput) (*model.Order, error) {
	return f.lifecycle.RequestTransition(ctx, in)
}

func (f *RestaurantFacade) RegisterPayment(ctx context.Context, in usecase.RegisterPaymentInput) (*model.Payment, error) {
	return f.payments.RegisterPayment(ctx, in)
}

func (f *RestaurantFacade) Payment(ctx context.Context, orderID int64) (*model.Payment, error) {
	return f.payments.Payment(ctx, orderID)
}

func (f *RestaurantFacade) PaymentQR(orderID, amount int64) ([]byte, error) {
	return f.qr.PaymentPNG(orderID, amount)
}
