package root

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"studyquest/internal/catalog"
	"studyquest/internal/config"
	"studyquest/internal/engine"
	"studyquest/internal/storage"
)

type session struct {
	svc *engine.Service
	day engine.DayResult
	log *slog.Logger
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		return storage.NewRedisStore(ctx, storage.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}, logger)
	default:
		path, err := storage.ResolveDBPath(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return storage.NewSQLiteStore(ctx, path, logger)
	}
}

// openService loads config, opens storage and starts today's session.
func openService(ctx context.Context) (*session, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := config.NewLogger(os.Stderr, cfg.Logging.Level)
	slog.SetDefault(logger)

	challenges, err := catalog.Load(cfg.Challenges.File)
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = store.Close()
	}

	eng := engine.New(engine.Options{Challenges: challenges, Location: loc})
	svc := engine.NewService(store, eng, logger)
	day, err := svc.Open(ctx)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("open session: %w", err)
	}
	return &session{svc: svc, day: day, log: logger}, cleanup, nil
}
