package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/Josema-montano/FastFood-Admin/internal/domain/errors"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/test"
	"github.com/Josema-montano/FastFood-Admin/internal/usecase"
)

func newAuthUseCase() (*usecase.AuthUseCase, *test.UserRepositoryStub) {
	users := test.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{
		IssueFn: func(id int64, role model.Role) (string, error) {
			return "token-for-" + string(role), nil
		},
	})
	return uc, users
}

func TestRegisterIssuesRoleToken(t *testing.T) {
	uc, users := newAuthUseCase()

	user, token, err := uc.Register(context.Background(), "ana", "secret", model.RoleKitchen)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.RoleKitchen {
		t.Fatalf("expected kitchen role, got %s", user.Role)
	}
	if token != "token-for-kitchen" {
		t.Fatalf("token must carry the role, got %q", token)
	}
	if users.Users["ana"].PasswordHash != "hash:secret" {
		t.Fatal("password must be stored hashed")
	}
}

func TestRegisterValidation(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, "", "secret", model.RoleWaiter); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for blank login, got %v", err)
	}
	if _, _, err := uc.Register(ctx, "ana", "secret", "chef"); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}

func TestRegisterDuplicateLogin(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, "ana", "secret", model.RoleWaiter); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, "ana", "other", model.RoleAdmin); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()
	login := test.RandomASCIIString(7, 14)
	password := test.RandomASCIIString(16, 32)

	if _, _, err := uc.Register(ctx, login, password, model.RoleWaiter); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, err := uc.Authenticate(ctx, login, password)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Login != login || token == "" {
		t.Fatalf("unexpected result: user=%+v token=%q", user, token)
	}

	if _, _, err := uc.Authenticate(ctx, login, "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "nobody", password); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown login, got %v", err)
	}
}
