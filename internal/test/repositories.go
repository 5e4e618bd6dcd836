package test

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/Josema-montano/FastFood-Admin/internal/domain/errors"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in-memory and honours the version
// column the way the real store does.
type OrderRepositoryStub struct {
	Orders    map[int64]*model.Order
	Next      int64
	Err       error
	CreateErr error
	UpdateErr error
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Create stores the order with a fresh id, version 1 and its first history entry.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	now := time.Now()
	stored := *order
	stored.ID = s.Next
	stored.Version = 1
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.History = []model.StateHistoryEntry{{State: stored.State, ChangedAt: now}}
	for i := range stored.Items {
		stored.Items[i].ID = int64(i + 1)
	}
	s.Next++
	s.Orders[stored.ID] = &stored
	snapshot := stored
	return &snapshot, nil
}

// GetByID returns a copy of the stored order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %d", domainErrors.ErrNotFound, id)
	}
	snapshot := *order
	return &snapshot, nil
}

// List returns stored orders filtered by scope.
func (s *OrderRepositoryStub) List(ctx context.Context, scope model.OrderScope, callerID int64) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Order
	for _, order := range s.Orders {
		switch scope {
		case model.ScopeKitchen:
			if !model.KitchenStates[order.State] {
				continue
			}
		case model.ScopeMine:
			if order.CreatedBy != callerID {
				continue
			}
		}
		out = append(out, *order)
	}
	return out, nil
}

// UpdateState applies the transition when state and version still match.
func (s *OrderRepositoryStub) UpdateState(ctx context.Context, id int64, from, to model.OrderState, version int64, reason string) error {
	if s.Err != nil {
		return s.Err
	}
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	order, ok := s.Orders[id]
	if !ok {
		return fmt.Errorf("%w: order %d", domainErrors.ErrNotFound, id)
	}
	if order.State != from || order.Version != version {
		return fmt.Errorf("%w: order %d was modified concurrently", domainErrors.ErrConcurrencyConflict, id)
	}
	now := time.Now()
	order.State = to
	order.Version++
	order.UpdatedAt = now
	order.History = append(order.History, model.StateHistoryEntry{State: to, ChangedAt: now})
	if to == model.OrderStateCancelled && reason != "" {
		order.CancelReason = reason
	}
	return nil
}

// PaymentRepositoryStub keeps at most one active payment per order.
type PaymentRepositoryStub struct {
	Payments map[int64]*model.Payment
	Next     int64
	Err      error
}

// NewPaymentRepositoryStub constructs stub repository with initialized maps.
func NewPaymentRepositoryStub() *PaymentRepositoryStub {
	return &PaymentRepositoryStub{Payments: make(map[int64]*model.Payment), Next: 1}
}

// Create stores the payment unless the order already has an active one.
func (s *PaymentRepositoryStub) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Payments == nil {
		s.Payments = make(map[int64]*model.Payment)
	}
	if existing, ok := s.Payments[payment.OrderID]; ok && existing.Status != model.PaymentStatusFailed {
		return nil, fmt.Errorf("%w: order %d", domainErrors.ErrDuplicatePayment, payment.OrderID)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *payment
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	s.Next++
	s.Payments[stored.OrderID] = &stored
	snapshot := stored
	return &snapshot, nil
}

// GetByOrder returns the active payment for the order or not found.
func (s *PaymentRepositoryStub) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	payment, ok := s.Payments[orderID]
	if !ok || payment.Status == model.PaymentStatusFailed {
		return nil, fmt.Errorf("%w: no payment for order %d", domainErrors.ErrNotFound, orderID)
	}
	snapshot := *payment
	return &snapshot, nil
}
