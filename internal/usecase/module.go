package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Josema-montano/FastFood-Admin/internal/adapter/idem"
	"github.com/Josema-montano/FastFood-Admin/internal/adapter/menu"
	"github.com/Josema-montano/FastFood-Admin/internal/broadcast"
	"github.com/Josema-montano/FastFood-Admin/internal/config"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/repository"
	"github.com/Josema-montano/FastFood-Admin/internal/pkg/lock"
)

// Module wires the use cases and the interfaces they consume.
var Module = fx.Module("usecase",
	fx.Provide(
		lock.NewKeyed,
		NewAuthUseCase,
		newLifecycleManager,
		newPaymentReconciler,
		func(c menu.Client) MenuProvider { return c },
		func(h *broadcast.Hub) EventPublisher { return h },
		func(s idem.Store) IdempotencyStore { return s },
		func(r *PaymentReconciler) PaymentGate { return r },
	),
)

type lifecycleParams struct {
	fx.In

	Orders repository.OrderRepository
	Menu   MenuProvider
	Gate   PaymentGate
	Events EventPublisher
	Idem   IdempotencyStore
	Locks  *lock.Keyed
	Logger *slog.Logger
	Config *config.Config
}

func newLifecycleManager(p lifecycleParams) *LifecycleManager {
	return NewLifecycleManager(p.Orders, p.Menu, p.Gate, p.Events, p.Idem, p.Locks, p.Logger, p.Config.StoreTimeout)
}

type reconcilerParams struct {
	fx.In

	Orders   repository.OrderRepository
	Payments repository.PaymentRepository
	Events   EventPublisher
	Idem     IdempotencyStore
	Locks    *lock.Keyed
	Logger   *slog.Logger
	Config   *config.Config
}

func newPaymentReconciler(p reconcilerParams) *PaymentReconciler {
	return NewPaymentReconciler(p.Orders, p.Payments, p.Events, p.Idem, p.Locks, p.Logger, p.Config.StoreTimeout)
}
