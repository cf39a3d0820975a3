package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teenfaith/teenfaith/internal/config"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "registered_users", []byte(`[]`)))
	got, err := kv.Get(ctx, "registered_users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	// overwrite, no merge
	require.NoError(t, kv.Set(ctx, "registered_users", []byte(`[{"id":"1"}]`)))
	got, err = kv.Get(ctx, "registered_users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), got)

	require.NoError(t, kv.Delete(ctx, "registered_users"))
	_, err = kv.Get(ctx, "registered_users")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, kv.Delete(ctx, "never-set"))
}

func TestSQLite(t *testing.T) {
	kv, err := NewSQLite(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	defer kv.Close() //nolint:errcheck

	testKV(t, kv)
}

func TestSQLite_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	kv, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "k", []byte("v")))
	require.NoError(t, kv.Close())

	kv, err = NewSQLite(path)
	require.NoError(t, err)
	defer kv.Close() //nolint:errcheck

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemory(t *testing.T) {
	kv := NewMemory()
	defer kv.Close() //nolint:errcheck

	testKV(t, kv)
}

func TestMemory_Prefix(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", []byte("v")))
	raw, err := kv.cache.Get(ctx, KeyPrefix+"k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), raw)
}

func TestNew(t *testing.T) {
	kv, err := New(&config.StorageConfig{Type: config.StorageTypeMemory})
	require.NoError(t, err)
	assert.IsType(t, &Cache{}, kv)

	kv, err = New(&config.StorageConfig{Type: config.StorageTypeSQLite, Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, kv)
	require.NoError(t, kv.Close())

	_, err = New(&config.StorageConfig{Type: "etcd"})
	assert.Error(t, err)

	_, err = New(nil)
	assert.Error(t, err)
}
