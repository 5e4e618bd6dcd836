package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/Josema-montano/FastFood-Admin/internal/domain/errors"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/repository"
	"github.com/Josema-montano/FastFood-Admin/internal/pkg/lock"
)

// PaymentReconciler registers payments against orders and answers the
// finalize gate. An order carries at most one non-failed payment, and a
// payment must match the order total exactly.
type PaymentReconciler struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	events   EventPublisher
	idem     IdempotencyStore
	locks    *lock.Keyed
	logger   *slog.Logger
	timeout  time.Duration
}

// NewPaymentReconciler constructs PaymentReconciler.
func NewPaymentReconciler(
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	events EventPublisher,
	idem IdempotencyStore,
	locks *lock.Keyed,
	logger *slog.Logger,
	storeTimeout time.Duration,
) *PaymentReconciler {
	return &PaymentReconciler{
		orders:   orders,
		payments: payments,
		events:   events,
		idem:     idem,
		locks:    locks,
		logger:   logger,
		timeout:  storeTimeout,
	}
}

// RegisterPaymentInput carries a register-payment command.
type RegisterPaymentInput struct {
	OrderID        int64
	Amount         int64
	Method         model.PaymentMethod
	IdempotencyKey string
}

// RegisterPayment records a completed payment for an order. Registration
// never moves the order: finalization stays an explicit, separate
// transition. The duplicate check runs under the order's lock and is
// backed by a partial unique index, so a concurrent pair cannot both
// succeed.
func (r *PaymentReconciler) RegisterPayment(ctx context.Context, in RegisterPaymentInput) (*model.Payment, error) {
	if !in.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", domainErrors.ErrValidation, in.Method)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domainErrors.ErrValidation)
	}

	r.locks.Lock(in.OrderID)
	defer r.locks.Unlock(in.OrderID)

	storeCtx, cancel := r.storeCtx(ctx)
	defer cancel()

	if in.IdempotencyKey != "" {
		if _, ok, err := r.idem.Lookup(ctx, "payment:"+in.IdempotencyKey); err != nil {
			r.logger.Warn("idempotency lookup failed", slog.String("error", err.Error()))
		} else if ok {
			return r.payments.GetByOrder(storeCtx, in.OrderID)
		}
	}

	order, err := r.orders.GetByID(storeCtx, in.OrderID)
	if err != nil {
		return nil, err
	}

	if _, err := r.payments.GetByOrder(storeCtx, in.OrderID); err == nil {
		return nil, fmt.Errorf("%w: order %d already has a payment", domainErrors.ErrDuplicatePayment, in.OrderID)
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	if in.Amount != order.Total {
		return nil, fmt.Errorf("%w: got %d, order total is %d", domainErrors.ErrPaymentMismatch, in.Amount, order.Total)
	}

	payment := &model.Payment{
		OrderID: in.OrderID,
		Amount:  in.Amount,
		Method:  in.Method,
		Status:  model.PaymentStatusCompleted,
	}
	created, err := r.payments.Create(storeCtx, payment)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if err := r.idem.Remember(ctx, "payment:"+in.IdempotencyKey, created.ID); err != nil {
			r.logger.Warn("idempotency remember failed", slog.String("error", err.Error()))
		}
	}

	order.Payment = created
	r.events.Publish(model.Event{Kind: model.EventPaymentRegistered, Order: *order, At: time.Now()})
	return created, nil
}

// HasCompletedPayment reports whether the order has a completed payment
// whose amount equals the order total. Both facts are read fresh so the
// finalize decision never relies on stale registration state.
func (r *PaymentReconciler) HasCompletedPayment(ctx context.Context, orderID int64) (bool, error) {
	storeCtx, cancel := r.storeCtx(ctx)
	defer cancel()

	payment, err := r.payments.GetByOrder(storeCtx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if payment.Status != model.PaymentStatusCompleted {
		return false, nil
	}

	order, err := r.orders.GetByID(storeCtx, orderID)
	if err != nil {
		return false, err
	}
	return payment.Amount == order.Total, nil
}

// Payment returns the active payment for an order, if any.
func (r *PaymentReconciler) Payment(ctx context.Context, orderID int64) (*model.Payment, error) {
	storeCtx, cancel := r.storeCtx(ctx)
	defer cancel()
	return r.payments.GetByOrder(storeCtx, orderID)
}

func (r *PaymentReconciler) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}
