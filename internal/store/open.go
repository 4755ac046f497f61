package store

import (
	"context"
	"strings"
)

// Backend names the storage implementation chosen at startup.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// Options selects and configures a backend.
type Options struct {
	// URL is the database connection string. Empty selects memory.
	URL string
	// UseMocks forces the memory backend even when URL is set.
	UseMocks bool
	Pool     PoolConfig
}

// SelectBackend decides which backend serves the process. Memory wins
// unless a connection string is configured and mocks are not forced.
func SelectBackend(url string, useMocks bool) (Backend, error) {
	if useMocks || strings.TrimSpace(url) == "" {
		return BackendMemory, nil
	}
	d, _, err := parseDatabaseURL(strings.TrimSpace(url))
	if err != nil {
		return "", err
	}
	if d == DialectPostgres {
		return BackendPostgres, nil
	}
	return BackendSQLite, nil
}

// Open builds the selected store. SQL backends are pinged and migrated
// before Open returns.
func Open(ctx context.Context, o Options, opts ...Option) (Store, Backend, error) {
	backend, err := SelectBackend(o.URL, o.UseMocks)
	if err != nil {
		return nil, "", err
	}
	if backend == BackendMemory {
		return NewMemoryStore(opts...), backend, nil
	}

	s, err := OpenSQLStore(ctx, strings.TrimSpace(o.URL), o.Pool, opts...)
	if err != nil {
		return nil, "", err
	}
	return s, backend, nil
}
