package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound, "missing key should return ErrNotFound")

	require.NoError(t, s.Set(ctx, "analysisHistory", []byte(`{"a":[]}`)))
	got, err := s.Get(ctx, "analysisHistory")
	require.NoError(t, err)
	assert.Equal(t, `{"a":[]}`, string(got))

	require.NoError(t, s.Set(ctx, "analysisHistory", []byte(`{}`)))
	got, err = s.Get(ctx, "analysisHistory")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got), "Set should replace the whole value")
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
	assert.Equal(t, "analysisHistory.json", entries[0].Name())
}

func TestFileStore_InvalidKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	err = s.Set(context.Background(), "../escape", []byte("x"))
	assert.Error(t, err)
}

func TestFileStore_CancelledContext(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Set(ctx, "k", []byte("v")), context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "speedx.db"))
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	s, err := NewRedisStore(context.Background(), addr, "", 15)
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	s, err := New(ctx, Options{Driver: DriverMemory}, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(ctx, Options{Driver: DriverFile, Path: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = New(ctx, Options{Driver: "etcd"}, logger)
	assert.Error(t, err)
}

func TestNew_RedisFallsBackToMemory(t *testing.T) {
	s, err := New(context.Background(), Options{Driver: DriverRedis, RedisAddr: "127.0.0.1:1"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
}
