package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
	storesqlite "github.com/jhoicas/Ferreteria-api/internal/infrastructure/sqlite"
)

func newStore(t *testing.T) *storesqlite.DocumentStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	store, err := storesqlite.NewDocumentStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestDocumentStore_GetInexistente(t *testing.T) {
	store := newStore(t)
	doc, found, err := store.Get(context.Background(), "products")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, doc)
}

func TestDocumentStore_PutReemplaza(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Put(ctx, "quotes", []byte(`[1]`)))
	require.NoError(t, store.Put(ctx, "quotes", []byte(`[1,2]`)))

	doc, found, err := store.Get(ctx, "quotes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[1,2]`, string(doc))
}

func TestDocumentStore_ModifyAbortaSinEscribir(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Put(ctx, "pos_sales", []byte(`["a"]`)))

	boom := errors.New("abortar")
	err := store.Modify(ctx, "pos_sales", func(current []byte, found bool) ([]byte, error) {
		assert.True(t, found)
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	doc, _, err := store.Get(ctx, "pos_sales")
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, string(doc))
}

func TestGateway_RoundTripSobreSQLite(t *testing.T) {
	ctx := context.Background()
	gw := persistence.NewGateway(newStore(t), nil)

	ids := []string{"venta-1", "venta-2"}
	persistence.Save(ctx, gw, "commission_settlements", ids)
	assert.Equal(t, ids, persistence.Load(ctx, gw, "commission_settlements", []string{}))

	out, err := persistence.Update(ctx, gw, "commission_settlements", []string{}, func(cur []string) ([]string, error) {
		return append(cur, "venta-3"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"venta-1", "venta-2", "venta-3"}, out)
	assert.Equal(t, out, persistence.Load(ctx, gw, "commission_settlements", []string{}))
}
