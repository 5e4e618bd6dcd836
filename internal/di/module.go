package di

import (
	"go.uber.org/fx"

	"github.com/Josema-montano/FastFood-Admin/internal/adapter/idem"
	"github.com/Josema-montano/FastFood-Admin/internal/adapter/menu"
	"github.com/Josema-montano/FastFood-Admin/internal/app"
	"github.com/Josema-montano/FastFood-Admin/internal/audit"
	"github.com/Josema-montano/FastFood-Admin/internal/broadcast"
	"github.com/Josema-montano/FastFood-Admin/internal/config"
	"github.com/Josema-montano/FastFood-Admin/internal/logger"
	"github.com/Josema-montano/FastFood-Admin/internal/pkg/auth"
	"github.com/Josema-montano/FastFood-Admin/internal/pkg/qr"
	"github.com/Josema-montano/FastFood-Admin/internal/server/http/handlers"
	"github.com/Josema-montano/FastFood-Admin/internal/server/http/router"
	"github.com/Josema-montano/FastFood-Admin/internal/storage/postgres"
	"github.com/Josema-montano/FastFood-Admin/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		menu.Module,
		idem.Module,
		audit.Module,
		broadcast.Module,
		usecase.Module,
		fx.Provide(func(cfg *config.Config) *qr.Generator { return qr.NewGenerator(cfg.QRBaseURL) }),
		fx.Provide(func(f *app.RestaurantFacade) handlers.RestaurantFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
