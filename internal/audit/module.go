package audit

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Josema-montano/FastFood-Admin/internal/broadcast"
	"github.com/Josema-montano/FastFood-Admin/internal/config"
)

// Module wires the audit publisher as the broadcast event sink.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Provide(func(p *Publisher) broadcast.EventSink { return p }),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) *Publisher {
	return NewPublisher(p.Config.KafkaBrokers, p.Config.AuditTopic, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher *Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
}
