package idem

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Josema-montano/FastFood-Admin/internal/config"
)

// Module provides the idempotency store: redis-backed when an address is
// configured, in-process otherwise.
var Module = fx.Provide(newStore)

func newStore(lc fx.Lifecycle, cfg *config.Config) Store {
	if cfg.RedisAddress == "" {
		return NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewRedisStore(client, 0)
}
