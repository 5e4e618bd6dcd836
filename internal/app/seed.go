package app

import (
	"context"
	"errors"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Josema-montano/FastFood-Admin/internal/config"
	domainErrors "github.com/Josema-montano/FastFood-Admin/internal/domain/errors"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/usecase"
)

type seedParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Auth      *usecase.AuthUseCase
	Config    *config.Config
	Logger    *slog.Logger
}

// seedAdmin provisions the bootstrap administrator before the server starts.
// Registration requires an administrator token, so the first account comes
// from ADMIN_LOGIN/ADMIN_PASSWORD.
func seedAdmin(p seedParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return ensureAdmin(ctx, p.Auth, p.Config, p.Logger)
		},
	})
}

func ensureAdmin(ctx context.Context, auth *usecase.AuthUseCase, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	_, _, err := auth.Register(ctx, cfg.AdminLogin, cfg.AdminPassword, model.RoleAdmin)
	if errors.Is(err, domainErrors.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("bootstrap admin created", slog.String("login", cfg.AdminLogin))
	return nil
}
