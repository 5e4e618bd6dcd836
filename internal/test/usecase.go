package test

import (
	"context"
	"sync"

	"github.com/Josema-montano/FastFood-Admin/internal/adapter/menu"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// PublisherStub records published events for assertions.
type PublisherStub struct {
	mu     sync.Mutex
	Events []model.Event
}

// Publish appends the event to the recorded list.
func (p *PublisherStub) Publish(event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// Published returns a copy of everything recorded so far.
func (p *PublisherStub) Published() []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Event, len(p.Events))
	copy(out, p.Events)
	return out
}

// IdemStoreStub is an in-memory idempotency store with error overrides.
type IdemStoreStub struct {
	mu          sync.Mutex
	Values      map[string]int64
	LookupErr   error
	RememberErr error
}

// NewIdemStoreStub constructs the stub with an initialized map.
func NewIdemStoreStub() *IdemStoreStub {
	return &IdemStoreStub{Values: make(map[string]int64)}
}

// Lookup returns a remembered identifier when present.
func (s *IdemStoreStub) Lookup(ctx context.Context, key string) (int64, bool, error) {
	if s.LookupErr != nil {
		return 0, false, s.LookupErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.Values[key]
	return id, ok, nil
}

// Remember stores the identifier under the key.
func (s *IdemStoreStub) Remember(ctx context.Context, key string, id int64) error {
	if s.RememberErr != nil {
		return s.RememberErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Values == nil {
		s.Values = make(map[string]int64)
	}
	s.Values[key] = id
	return nil
}

// GateStub answers the finalize gate with a fixed result.
type GateStub struct {
	Paid bool
	Err  error
}

// HasCompletedPayment returns the configured answer.
func (g GateStub) HasCompletedPayment(ctx context.Context, orderID int64) (bool, error) {
	return g.Paid, g.Err
}

// MenuStub serves products from a fixed catalog.
type MenuStub struct {
	Products map[int64]*model.Product
	Err      error
}

// Product returns the catalog entry or not found.
func (m MenuStub) Product(ctx context.Context, productID int64) (*model.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if product, ok := m.Products[productID]; ok {
		return product, nil
	}
	return nil, menu.ErrProductNotFound
}
