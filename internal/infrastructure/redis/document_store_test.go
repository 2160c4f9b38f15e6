package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Ferreteria-api/pkg/config"
)

type mockCmdable struct {
	data    map[string]string
	failSet bool
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	val, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (m *mockCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	if m.failSet {
		return redis.NewStatusResult("", errors.New("OOM command not allowed"))
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func TestDocumentStore_ClaveConPrefijo(t *testing.T) {
	s := &DocumentStore{store: newMockCmdable(), prefix: "ferreteria"}
	assert.Equal(t, "ferreteria:doc:pos_sales", s.DocumentKey("pos_sales"))

	s.prefix = ""
	assert.Equal(t, "doc:pos_sales", s.DocumentKey("pos_sales"))
}

func TestDocumentStore_GetPut(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	s := &DocumentStore{store: mock, prefix: "ferreteria"}

	_, found, err := s.Get(ctx, "quotes")
	require.NoError(t, err)
	assert.False(t, found, "redis.Nil significa que la clave no existe")

	require.NoError(t, s.Put(ctx, "quotes", []byte(`[]`)))
	assert.Equal(t, `[]`, mock.data["ferreteria:doc:quotes"])

	doc, found, err := s.Get(ctx, "quotes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(doc))
	assert.NoError(t, s.Ping(ctx))
}

func TestGateway_SobreRedisDegradaSiSetFalla(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	gw := persistence.NewGateway(&DocumentStore{store: mock}, nil)

	persistence.Save(ctx, gw, "identities", []string{"u1"})
	assert.Equal(t, []string{"u1"}, persistence.Load(ctx, gw, "identities", []string(nil)))

	mock.failSet = true
	persistence.Save(ctx, gw, "identities", []string{"u1", "u2"})
	assert.Equal(t, []string{"u1"}, persistence.Load(ctx, gw, "identities", []string(nil)), "la escritura fallida no se propaga ni corrompe")
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	assert.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 2, PoolSize: 7, DialTimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, time.Second, opts.DialTimeout)

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://:secreto@cache:6380/3"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, "secreto", opts.Password)
}
