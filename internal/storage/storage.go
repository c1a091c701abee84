// Package storage provides the key/value backends that hold persisted
// analysis history. A backend stores opaque byte values under string keys,
// and every Set replaces the previous value entirely.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("key not found")

// Store is a key/value backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Driver names accepted by New.
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Driver        string
	Path          string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New opens the backend named by opts.Driver. An unreachable redis server
// falls back to the memory backend.
func New(ctx context.Context, opts Options, logger *zap.Logger) (Store, error) {
	switch opts.Driver {
	case DriverFile, "":
		return NewFileStore(opts.Path)
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return NewSQLiteStore(ctx, opts.SQLitePath)
	case DriverRedis:
		s, err := NewRedisStore(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		if err != nil {
			logger.Warn("failed to connect to Redis, falling back to memory storage",
				zap.String("address", opts.RedisAddr),
				zap.Error(err),
			)
			return NewMemoryStore(), nil
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
