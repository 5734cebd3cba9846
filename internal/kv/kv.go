// Package kv is the local key-value storage behind the watchlist: a JSON file
// by default, or Redis when several client sessions share state.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotFound is returned by Get for keys that were never set or were deleted.
	ErrNotFound = errors.New("kv: key not found")
	// ErrConflict is returned by Update when other writers kept changing the
	// key and no attempt could commit.
	ErrConflict = errors.New("kv: too many concurrent updates")
)

// UpdateFunc receives the current value of a key, or (nil, false) when the
// key is absent, and returns its replacement. Returning a nil value leaves
// the key untouched. An error aborts the update and is returned by Update as
// is. Backends may call it more than once.
type UpdateFunc func(old []byte, found bool) ([]byte, error)

// Store is a flat string-keyed store of opaque values.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Update is an atomic read-modify-write of key, also against other
	// processes sharing the backend.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open returns the configured backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFileStore(opts.Path), nil
	case BackendRedis:
		return NewRedisStore(ctx, &redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unsupported watchlist backend %q: must be %s or %s", opts.Backend, BackendFile, BackendRedis)
	}
}
