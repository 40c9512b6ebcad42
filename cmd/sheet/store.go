package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/investigator/internal/config"
	"github.com/cory-johannsen/investigator/internal/storage"
	"github.com/cory-johannsen/investigator/internal/storage/postgres"
	"github.com/cory-johannsen/investigator/internal/storage/redisstore"
	"github.com/cory-johannsen/investigator/internal/storage/sqlite"
)

// openStore connects the configured backend.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), nil
	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Debug("sqlite store opened", zap.String("path", cfg.Storage.SQLitePath))
		return s, nil
	case config.BackendPostgres:
		s, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Debug("postgres store connected", zap.String("host", cfg.Database.Host))
		return s, nil
	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Debug("redis store connected", zap.String("addr", cfg.Redis.Addr))
		return redisstore.NewStore(client, cfg.Redis.KeyPrefix), nil
	}
	return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}
