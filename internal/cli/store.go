package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/taskflow/internal/config"
	"github.com/aretw0/taskflow/pkg/adapters/file"
	"github.com/aretw0/taskflow/pkg/adapters/memory"
	"github.com/aretw0/taskflow/pkg/adapters/redis"
	"github.com/aretw0/taskflow/pkg/adapters/sqlite"
	"github.com/aretw0/taskflow/pkg/ports"
)

// OpenStore opens the task store selected by cfg.
// The returned close func releases backend connections and is never nil.
func OpenStore(ctx context.Context, cfg *config.Config) (ports.TaskStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreFile, "":
		return file.New(cfg.TasksFile), noop, nil

	case config.StoreRedis:
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithKey(cfg.Redis.Key))
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, noop, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return s, s.Close, nil

	case config.StoreSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s.Close, nil

	case config.StoreMemory:
		return memory.NewStore(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
