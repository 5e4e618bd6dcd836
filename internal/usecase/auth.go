package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/Josema-montano/FastFood-Admin/internal/domain/errors"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/repository"
	"github.com/Josema-montano/FastFood-Admin/internal/pkg/auth"
)

// AuthUseCase registers staff accounts and authenticates them. Tokens
// carry the user's role so request handling never needs a user lookup.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens auth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher auth.PasswordHasher, tokens auth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a staff account and returns it with a fresh token.
func (u *AuthUseCase) Register(ctx context.Context, login, password string, role model.Role) (*model.User, string, error) {
	if login == "" || password == "" {
		return nil, "", fmt.Errorf("%w: login and password are required", domainErrors.ErrValidation)
	}
	if !role.Valid() {
		return nil, "", fmt.Errorf("%w: unknown role %q", domainErrors.ErrValidation, role)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, login, hash, role)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Authenticate checks credentials and returns the user with a fresh token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if login == "" || password == "" {
		return nil, "", fmt.Errorf("%w: login and password are required", domainErrors.ErrValidation)
	}

	user, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// ParseToken validates a token and returns the identity it carries.
func (u *AuthUseCase) ParseToken(token string) (int64, model.Role, error) {
	return u.tokens.ParseToken(token)
}

// GetByID loads one user.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
