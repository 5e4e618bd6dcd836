package repository

import (
	"context"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// PaymentRepository manages payment facts. Create enforces at most one
// non-failed payment per order and returns ErrDuplicatePayment when a
// second one is attempted, even under concurrent writers. GetByOrder
// returns the active (non-failed) payment or ErrNotFound.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error)
}
