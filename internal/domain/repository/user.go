package repository

import (
	"context"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// UserRepository describes persistence operations with staff accounts.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
