// Package cli implements the command logic behind the provisio binary:
// building an engine from the application configuration, the interactive
// chat loop, and the session maintenance commands.
package cli

import (
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/provisio/provisio"
	"github.com/provisio/provisio/internal/config"
	"github.com/provisio/provisio/pkg/adapters/memory"
	redisadapter "github.com/provisio/provisio/pkg/adapters/redis"
	"github.com/provisio/provisio/pkg/persistence/middleware"
	"github.com/provisio/provisio/pkg/ports"
)

// BuildEngine assembles a facade engine from the application configuration:
// store backend selection, at-rest middleware, and the distributed locker
// for the redis backend. Extra options (hooks, a custom provisioner) stack
// on top. The returned close function releases the store's connections and
// is safe to call on a memory-backed engine.
func BuildEngine(cfg *config.Config, logger *slog.Logger, extra ...provisio.Option) (*provisio.Engine, func() error, error) {
	store, locker, closeFn, err := buildStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []provisio.Option{
		provisio.WithStore(store),
		provisio.WithLogger(logger),
		provisio.WithDefaultSubscription(cfg.Azure.DefaultSubscription),
	}
	if locker != nil {
		opts = append(opts, provisio.WithLocker(locker))
	}
	opts = append(opts, extra...)

	eng, err := provisio.New(opts...)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return eng, closeFn, nil
}

// buildStore selects the configured backend and wraps it with the at-rest
// middleware. Redaction runs closest to the raw store so encrypted fields
// are sealed after secrets have already been masked.
func buildStore(cfg *config.Config) (ports.SessionStore, ports.DistributedLocker, func() error, error) {
	var (
		store  ports.SessionStore
		locker ports.DistributedLocker
	)
	closeFn := func() error { return nil }

	switch cfg.Store.Backend {
	case "redis":
		rc := cfg.Store.Redis
		client := goredis.NewClient(&goredis.Options{
			Addr:     rc.Address,
			Password: rc.Password,
			DB:       rc.DB,
		})
		store = redisadapter.NewFromClient(client,
			redisadapter.WithPrefix(rc.Prefix),
			redisadapter.WithTTL(rc.TTL),
		)
		locker = redisadapter.NewLocker(client, rc.Prefix+"lock:")
		closeFn = client.Close
	default:
		store = memory.NewStore()
	}

	if cfg.Store.RedactSecrets {
		store = middleware.NewRedactionMiddleware(middleware.DefaultRedactionPatterns())(store)
	}
	key, err := cfg.Store.DecodeEncryptionKey()
	if err != nil {
		_ = closeFn()
		return nil, nil, nil, err
	}
	if key != nil {
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
	}

	return store, locker, closeFn, nil
}
