package menu

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Josema-montano/FastFood-Admin/internal/config"
)

// Module exposes menu catalog client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.MenuAddress, p.Logger)
}
