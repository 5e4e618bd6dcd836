package model

import "time"

// Role is a caller capability class supplied by the identity layer.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleWaiter  Role = "waiter"
	RoleKitchen Role = "kitchen"
)

// Valid reports whether the role is known.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWaiter, RoleKitchen:
		return true
	}
	return false
}

// kitchenTargets is the subset of transition targets a kitchen caller may
// request. It filters the canonical table; it is not a second table.
var kitchenTargets = map[OrderState]bool{
	OrderStateInPreparation: true,
	OrderStateReady:         true,
	OrderStateCancelled:     true,
}

// RoleAllows reports whether the role may request a transition to target.
// Waitstaff and admins may request anything the canonical table permits;
// kitchen callers are limited to preparation progress and cancellation.
func RoleAllows(role Role, target OrderState) bool {
	switch role {
	case RoleAdmin, RoleWaiter:
		return true
	case RoleKitchen:
		return kitchenTargets[target]
	}
	return false
}

// User is an authenticated staff member.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
