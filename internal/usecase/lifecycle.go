package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Josema-montano/FastFood-Admin/internal/adapter/menu"
	domainErrors "github.com/Josema-montano/FastFood-Admin/internal/domain/errors"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/repository"
	"github.com/Josema-montano/FastFood-Admin/internal/pkg/lock"
)

// MenuProvider resolves a product's price snapshot at order-creation time.
type MenuProvider interface {
	Product(ctx context.Context, productID int64) (*model.Product, error)
}

// EventPublisher receives the snapshot of every accepted mutation.
// Publishing is out-of-band: it never fails the command.
type EventPublisher interface {
	Publish(event model.Event)
}

// IdempotencyStore remembers results of token-carrying commands so retries
// after transient failures cannot create duplicates.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (int64, bool, error)
	Remember(ctx context.Context, key string, id int64) error
}

// PaymentGate is the finalize gate: it re-checks at transition time that a
// qualifying payment exists, rather than assuming registration implied
// finalize intent.
type PaymentGate interface {
	HasCompletedPayment(ctx context.Context, orderID int64) (bool, error)
}

// LifecycleManager owns the order state machine. All transitions go
// through the canonical table in the model package; role scoping filters
// that table and is never a second copy of it.
type LifecycleManager struct {
	orders  repository.OrderRepository
	menu    MenuProvider
	gate    PaymentGate
	events  EventPublisher
	idem    IdempotencyStore
	locks   *lock.Keyed
	logger  *slog.Logger
	timeout time.Duration
}

// NewLifecycleManager constructs LifecycleManager.
func NewLifecycleManager(
	orders repository.OrderRepository,
	menuProvider MenuProvider,
	gate PaymentGate,
	events EventPublisher,
	idem IdempotencyStore,
	locks *lock.Keyed,
	logger *slog.Logger,
	storeTimeout time.Duration,
) *LifecycleManager {
	return &LifecycleManager{
		orders:  orders,
		menu:    menuProvider,
		gate:    gate,
		events:  events,
		idem:    idem,
		locks:   locks,
		logger:  logger,
		timeout: storeTimeout,
	}
}

// CreateOrderItem is one requested product/quantity pair.
type CreateOrderItem struct {
	ProductID int64
	Quantity  int32
}

// CreateOrderInput carries a create-order command.
type CreateOrderInput struct {
	Table          string
	Items          []CreateOrderItem
	Notes          string
	CallerID       int64
	CallerRole     model.Role
	IdempotencyKey string
}

// TransitionInput carries a transition command.
type TransitionInput struct {
	OrderID    int64
	Target     model.OrderState
	CallerRole model.Role
	Reason     string
}

// CreateOrder validates the request, snapshots prices from the menu
// catalog, computes the total, persists the order in state CREATED with
// its first history entry, and broadcasts the creation to the kitchen.
func (m *LifecycleManager) CreateOrder(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	if in.CallerRole != model.RoleWaiter && in.CallerRole != model.RoleAdmin {
		return nil, fmt.Errorf("%w: role %q cannot create orders", domainErrors.ErrForbidden, in.CallerRole)
	}
	if in.Table == "" {
		return nil, fmt.Errorf("%w: table identifier is blank", domainErrors.ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no line items", domainErrors.ErrValidation)
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %d", domainErrors.ErrValidation, item.ProductID)
		}
	}

	if in.IdempotencyKey != "" {
		if id, ok, err := m.idem.Lookup(ctx, "order:"+in.IdempotencyKey); err != nil {
			m.logger.Warn("idempotency lookup failed", slog.String("error", err.Error()))
		} else if ok {
			return m.Order(ctx, id)
		}
	}

	items := make([]model.LineItem, 0, len(in.Items))
	for _, item := range in.Items {
		product, err := m.menu.Product(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, menu.ErrProductNotFound) || errors.Is(err, menu.ErrProductUnavailable) {
				return nil, fmt.Errorf("%w: product %d cannot be priced: %v", domainErrors.ErrValidation, item.ProductID, err)
			}
			return nil, err
		}
		items = append(items, model.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Subtotal:  int64(item.Quantity) * product.Price,
		})
	}

	order := &model.Order{
		Table:     in.Table,
		State:     model.OrderStateCreated,
		Items:     items,
		Total:     model.TotalOf(items),
		Notes:     in.Notes,
		CreatedBy: in.CallerID,
	}

	storeCtx, cancel := m.storeCtx(ctx)
	defer cancel()
	created, err := m.orders.Create(storeCtx, order)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if err := m.idem.Remember(ctx, "order:"+in.IdempotencyKey, created.ID); err != nil {
			m.logger.Warn("idempotency remember failed", slog.String("error", err.Error()))
		}
	}

	m.events.Publish(model.Event{Kind: model.EventOrderCreated, Order: *created, At: time.Now()})
	return created, nil
}

// RequestTransition applies one lifecycle transition. Checks run in a
// fixed sequence: existence, canonical table, role capability, and for
// FINALIZED the payment gate. On success the state change and the history
// entry are persisted atomically under the order's version, and the new
// snapshot is broadcast.
func (m *LifecycleManager) RequestTransition(ctx context.Context, in TransitionInput) (*model.Order, error) {
	if !in.Target.Valid() {
		return nil, fmt.Errorf("%w: unknown state %q", domainErrors.ErrValidation, in.Target)
	}

	m.locks.Lock(in.OrderID)
	defer m.locks.Unlock(in.OrderID)

	storeCtx, cancel := m.storeCtx(ctx)
	defer cancel()

	order, err := m.orders.GetByID(storeCtx, in.OrderID)
	if err != nil {
		return nil, err
	}

	if !model.CanTransition(order.State, in.Target) {
		return nil, fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, order.State, in.Target)
	}

	if !model.RoleAllows(in.CallerRole, in.Target) {
		return nil, fmt.Errorf("%w: role %q may not request %s", domainErrors.ErrForbidden, in.CallerRole, in.Target)
	}

	if in.Target == model.OrderStateFinalized {
		paid, err := m.gate.HasCompletedPayment(ctx, in.OrderID)
		if err != nil {
			return nil, err
		}
		if !paid {
			return nil, fmt.Errorf("%w: order %d has no completed payment", domainErrors.ErrPaymentRequired, in.OrderID)
		}
	}

	if err := m.orders.UpdateState(storeCtx, in.OrderID, order.State, in.Target, order.Version, in.Reason); err != nil {
		return nil, err
	}

	now := time.Now()
	order.State = in.Target
	order.Version++
	order.UpdatedAt = now
	order.History = append(order.History, model.StateHistoryEntry{State: in.Target, ChangedAt: now})
	if in.Target == model.OrderStateCancelled && in.Reason != "" {
		order.CancelReason = in.Reason
	}

	m.events.Publish(model.Event{Kind: model.EventOrderTransitioned, Order: *order, At: now})
	return order, nil
}

// Order returns the full snapshot for one order.
func (m *LifecycleManager) Order(ctx context.Context, id int64) (*model.Order, error) {
	storeCtx, cancel := m.storeCtx(ctx)
	defer cancel()
	return m.orders.GetByID(storeCtx, id)
}

// Orders lists snapshots in the given scope. ScopeMine filters by the
// caller that created the order.
func (m *LifecycleManager) Orders(ctx context.Context, scope model.OrderScope, callerID int64) ([]model.Order, error) {
	switch scope {
	case model.ScopeAll, model.ScopeKitchen, model.ScopeMine:
	default:
		return nil, fmt.Errorf("%w: unknown scope %q", domainErrors.ErrValidation, scope)
	}

	storeCtx, cancel := m.storeCtx(ctx)
	defer cancel()
	return m.orders.List(storeCtx, scope, callerID)
}

func (m *LifecycleManager) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.timeout)
}
