package model

import "time"

// OrderState describes the order preparation lifecycle.
type OrderState string

const (
	OrderStateCreated       OrderState = "CREATED"
	OrderStateInPreparation OrderState = "IN_PREPARATION"
	OrderStateReady         OrderState = "READY"
	OrderStateDelivered     OrderState = "DELIVERED"
	OrderStateFinalized     OrderState = "FINALIZED"
	OrderStateCancelled     OrderState = "CANCELLED"
)

// transitions is the canonical transition table. Every caller consults it
// through CanTransition; role scoping filters it but never replaces it.
var transitions = map[OrderState][]OrderState{
	OrderStateCreated:       {OrderStateInPreparation, OrderStateCancelled},
	OrderStateInPreparation: {OrderStateReady, OrderStateCancelled},
	OrderStateReady:         {OrderStateDelivered, OrderStateCancelled},
	OrderStateDelivered:     {OrderStateFinalized},
	OrderStateFinalized:     {},
	OrderStateCancelled:     {},
}

// CanTransition reports whether the canonical table allows from -> to.
func CanTransition(from, to OrderState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Valid reports whether the state is a known lifecycle state.
func (s OrderState) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions exist from the state.
func (s OrderState) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// LineItem is a product/quantity entry with the unit price captured at
// order-creation time. Later catalog edits never touch existing orders.
// Money values are cents.
type LineItem struct {
	ID        int64
	ProductID int64
	Name      string
	Quantity  int32
	UnitPrice int64
	Subtotal  int64
}

// StateHistoryEntry records one accepted transition, including the initial
// creation state. Entries are append-only.
type StateHistoryEntry struct {
	State     OrderState
	ChangedAt time.Time
}

// Order is a table's placed request for items, tracked through its
// lifecycle. Items and total are fixed at creation; Version guards writes.
type Order struct {
	ID           int64
	Table        string
	State        OrderState
	Items        []LineItem
	Total        int64
	Notes        string
	CancelReason string
	CreatedBy    int64
	Version      int64
	Payment      *Payment
	History      []StateHistoryEntry
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalOf sums line subtotals in cents.
func TotalOf(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal
	}
	return total
}

// OrderScope selects which orders a listing returns.
type OrderScope string

const (
	ScopeAll     OrderScope = "all"
	ScopeKitchen OrderScope = "kitchen"
	ScopeMine    OrderScope = "mine"
)

// KitchenStates are the states a kitchen display cares about.
var KitchenStates = map[OrderState]bool{
	OrderStateCreated:       true,
	OrderStateInPreparation: true,
	OrderStateReady:         true,
}

// Product is a priced catalog entry resolved from the menu service at
// order-creation time.
type Product struct {
	ID        int64
	Name      string
	Price     int64
	Available bool
}
