// Package store abre el backend del gateway de persistencia según STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/redis"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Ferreteria-api/pkg/config"
	"github.com/jhoicas/Ferreteria-api/pkg/logger"
)

// Open abre el backend elegido por STORE_DRIVER. Si falla devuelve un store nil
// (host no disponible) y un close que no hace nada.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.DocumentStore, func(), error) {
	noop := func() {}
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return memory.NewDocumentStore(), noop, nil

	case config.StoreDriverSQLite:
		s, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("sqlite %s: %w", cfg.Store.SQLitePath, err)
		}
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("almacén SQLite abierto")
		return s, func() { _ = s.Close() }, nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		s := postgres.NewDocumentStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return s, pool.Close, nil

	case config.StoreDriverRedis:
		s, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, fmt.Errorf("conexión a Redis: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	}
	return nil, noop, fmt.Errorf("driver desconocido %q", cfg.Store.Driver)
}
