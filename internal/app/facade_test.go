package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/Josema-montano/FastFood-Admin/internal/domain/errors"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/pkg/lock"
	"github.com/Josema-montano/FastFood-Admin/internal/pkg/qr"
	testhelpers "github.com/Josema-montano/FastFood-Admin/internal/test"
	"github.com/Josema-montano/FastFood-Admin/internal/usecase"
)

func newFacade() (*RestaurantFacade, *testhelpers.UserRepositoryStub, *testhelpers.OrderRepositoryStub) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	users := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, model.Role, error) { return 99, model.RoleAdmin, nil }}
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy)

	orders := testhelpers.NewOrderRepositoryStub()
	payments := testhelpers.NewPaymentRepositoryStub()
	events := &testhelpers.PublisherStub{}
	idem := testhelpers.NewIdemStoreStub()
	locks := lock.NewKeyed()
	catalog := testhelpers.MenuStub{Products: map[int64]*model.Product{
		1: {ID: 1, Name: "burger", Price: 1200, Available: true},
	}}

	reconciler := usecase.NewPaymentReconciler(orders, payments, events, idem, locks, logger, 0)
	manager := usecase.NewLifecycleManager(orders, catalog, reconciler, events, idem, locks, logger, 0)

	facade := NewRestaurantFacade(authUC, manager, reconciler, qr.NewGenerator("https://pay.example.com"))
	return facade, users, orders
}

func TestRestaurantFacadeAuth(t *testing.T) {
	facade, users, _ := newFacade()
	ctx := context.Background()

	token, err := facade.Register(ctx, "user", "pass", model.RoleWaiter)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := users.GetByLogin(ctx, "user")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Role != model.RoleWaiter {
		t.Fatalf("unexpected stored role %q", stored.Role)
	}

	if _, err := facade.Authenticate(ctx, "user", "pass"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	id, role, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 || role != model.RoleAdmin {
		t.Fatalf("unexpected identity %d/%s", id, role)
	}
}

func TestRestaurantFacadeOrderFlow(t *testing.T) {
	facade, _, _ := newFacade()
	ctx := context.Background()

	order, err := facade.CreateOrder(ctx, usecase.CreateOrderInput{
		Table:      "4",
		Items:      []usecase.CreateOrderItem{{ProductID: 1, Quantity: 2}},
		CallerID:   3,
		CallerRole: model.RoleWaiter,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.Total != 2400 {
		t.Fatalf("unexpected total %d", order.Total)
	}

	moved, err := facade.RequestTransition(ctx, usecase.TransitionInput{OrderID: order.ID, Target: model.OrderStateInPreparation, CallerRole: model.RoleKitchen})
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if moved.State != model.OrderStateInPreparation {
		t.Fatalf("unexpected state %s", moved.State)
	}

	loaded, err := facade.Order(ctx, order.ID)
	if err != nil {
		t.Fatalf("load order: %v", err)
	}
	if loaded.State != model.OrderStateInPreparation {
		t.Fatalf("unexpected loaded state %s", loaded.State)
	}

	list, err := facade.Orders(ctx, model.ScopeKitchen, 0)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one order in kitchen scope, got %d", len(list))
	}
}

func TestRestaurantFacadePayments(t *testing.T) {
	facade, _, _ := newFacade()
	ctx := context.Background()

	order, err := facade.CreateOrder(ctx, usecase.CreateOrderInput{
		Table:      "4",
		Items:      []usecase.CreateOrderItem{{ProductID: 1, Quantity: 1}},
		CallerRole: model.RoleWaiter,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := facade.Payment(ctx, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found before registration, got %v", err)
	}

	payment, err := facade.RegisterPayment(ctx, usecase.RegisterPaymentInput{OrderID: order.ID, Amount: 1200, Method: model.PaymentMethodCard})
	if err != nil {
		t.Fatalf("register payment: %v", err)
	}
	if payment.Status != model.PaymentStatusCompleted {
		t.Fatalf("unexpected status %s", payment.Status)
	}

	fetched, err := facade.Payment(ctx, order.ID)
	if err != nil {
		t.Fatalf("fetch payment: %v", err)
	}
	if fetched.ID != payment.ID {
		t.Fatalf("unexpected payment %d", fetched.ID)
	}
}

func TestRestaurantFacadePaymentQR(t *testing.T) {
	facade, _, _ := newFacade()

	png, err := facade.PaymentQR(7, 2500)
	if err != nil {
		t.Fatalf("payment qr: %v", err)
	}
	if !bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatal("expected a png image")
	}
}
