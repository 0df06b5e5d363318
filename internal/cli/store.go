package cli

import (
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"pomodoro/internal/config"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/storage"
)

// OpenStore builds the configured session store. The returned close func
// releases backend connections and is never nil. A nil Store means
// persistence is disabled.
func OpenStore(appName string, cfg *config.Config) (timekeeper.Store, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendHTTP:
		store, err := storage.NewHTTPStore(cfg.Store.ServerURL, cfg.Store.Timeout)
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Str("url", cfg.Store.ServerURL).Msg("using http session store")
		return store, noop, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		log.Debug().Str("addr", cfg.Store.Redis.Addr).Str("profile", cfg.Store.Profile).Msg("using redis session store")
		closeClient := func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("close redis client")
			}
		}
		return storage.NewRedisStore(client, cfg.Store.Profile, cfg.Store.Redis.TTL), closeClient, nil
	case config.BackendFile:
		path := cfg.Store.StatePath
		if path == "" {
			var err error
			path, err = storage.DefaultStatePath(appName)
			if err != nil {
				return nil, noop, err
			}
		}
		log.Debug().Str("path", path).Msg("using file session store")
		return storage.NewFileStore(path), noop, nil
	case config.BackendNone:
		return nil, noop, nil
	}
	return nil, noop, errors.Errorf("unknown store backend %q", cfg.Store.Backend)
}
