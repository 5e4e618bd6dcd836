package broadcast

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Josema-montano/FastFood-Admin/internal/config"
)

// Module wires the broadcast hub and its lifecycle.
var Module = fx.Options(
	fx.Provide(newHub),
	fx.Invoke(registerLifecycle),
)

type hubParams struct {
	fx.In

	Config *config.Config
	Sink   EventSink
	Logger *slog.Logger
}

func newHub(p hubParams) *Hub {
	return NewHub(p.Config.BroadcastBuffer, p.Sink, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, hub *Hub, ctx context.Context) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			hub.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			hub.Stop()
			return nil
		},
	})
}
