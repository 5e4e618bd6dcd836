package repository

import (
	"context"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Writes are
// transactional: Create stores the order, its line items, and the first
// history entry together; UpdateState applies the transition, bumps the
// version, and appends the history entry together. A stale expected
// state/version surfaces as ErrConcurrencyConflict.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, scope model.OrderScope, callerID int64) ([]model.Order, error)
	UpdateState(ctx context.Context, id int64, from, to model.OrderState, version int64, reason string) error
}
