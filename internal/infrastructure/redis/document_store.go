// Package redis DocumentStore sobre Redis: cada colección es un string JSON bajo una clave con prefijo.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/pkg/config"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
}

// DocumentStore implementación del puerto DocumentStore sobre go-redis.
type DocumentStore struct {
	store  cmdable
	raw    *redis.Client
	prefix string
}

// New abre el cliente con pool/timeouts de la configuración y verifica conectividad.
func New(ctx context.Context, cfg config.RedisConfig) (*DocumentStore, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &DocumentStore{store: raw, raw: raw, prefix: cfg.KeyPrefix}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url o address requerido")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsear redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// DocumentKey clave con namespace en Redis: <prefix>:doc:<key>.
func (s *DocumentStore) DocumentKey(key string) string {
	if s.prefix == "" {
		return "doc:" + key
	}
	return s.prefix + ":doc:" + key
}

// Get obtiene el documento de key; redis.Nil equivale a "no existe".
func (s *DocumentStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.store.Get(ctx, s.DocumentKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get document %s: %w", key, err)
	}
	return val, true, nil
}

// Put reemplaza el documento de key (sin TTL).
func (s *DocumentStore) Put(ctx context.Context, key string, doc []byte) error {
	if err := s.store.Set(ctx, s.DocumentKey(key), doc, 0).Err(); err != nil {
		return fmt.Errorf("put document %s: %w", key, err)
	}
	return nil
}

// Ping verifica la conexión (health check).
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx).Err()
}

// Close cierra el cliente subyacente.
func (s *DocumentStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}
