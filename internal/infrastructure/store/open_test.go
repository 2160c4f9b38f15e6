package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/store"
	"github.com/jhoicas/Ferreteria-api/pkg/config"
	"github.com/jhoicas/Ferreteria-api/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory}}
	docs, closeFn, err := store.Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()
	require.NotNil(t, docs)

	require.NoError(t, docs.Put(context.Background(), "products", []byte(`[]`)))
	raw, found, err := docs.Get(context.Background(), "products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestOpen_SQLiteCreaArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ferreteria.db")
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverSQLite, SQLitePath: path}}
	docs, closeFn, err := store.Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, docs.Put(context.Background(), "quotes", []byte(`[{"id":"q1"}]`)))
	_, found, err := docs.Get(context.Background(), "quotes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.FileExists(t, path)
}

func TestOpen_RedisSinDireccion(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverRedis}}
	docs, closeFn, err := store.Open(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
	assert.Nil(t, docs)
	closeFn()
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "cassandra"}}
	docs, closeFn, err := store.Open(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
	assert.Nil(t, docs)
	closeFn()
}
