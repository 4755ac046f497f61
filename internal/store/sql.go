package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/holawaleh/dreamspacefrontend/internal/types"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// PoolConfig holds connection pool settings for SQL backends.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// SQLStore implements Store on a relational database. Every operation is a
// single statement; mutations report the affected row through RETURNING.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	opts    options
}

// NewSQLStore wraps an open, migrated database.
func NewSQLStore(db *sql.DB, d Dialect, opts ...Option) *SQLStore {
	return &SQLStore{db: db, dialect: d, opts: buildOptions(opts)}
}

// OpenSQLStore connects to url, applies pragmas or pool settings, and runs
// migrations.
func OpenSQLStore(ctx context.Context, url string, pool PoolConfig, opts ...Option) (*SQLStore, error) {
	d, dsn, err := parseDatabaseURL(url)
	if err != nil {
		return nil, err
	}

	if d == DialectSQLite {
		if err := ensureSQLiteDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	switch d {
	case DialectSQLite:
		// A single connection keeps ":memory:" databases coherent and
		// serializes writers.
		db.SetMaxOpenConns(1)
		if err := enablePragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable pragmas: %w", err)
		}
	case DialectPostgres:
		db.SetMaxOpenConns(pool.MaxOpenConns)
		db.SetMaxIdleConns(pool.MaxIdleConns)
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	pingCtx := ctx
	if pool.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, pool.ConnectTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return NewSQLStore(db, d, opts...), nil
}

func ensureSQLiteDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.Contains(path, ":memory:") {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	return nil
}

// enablePragmas sets SQLite pragmas for performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// DB exposes the underlying pool for metrics collection.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Dialect reports the SQL flavour in use.
func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

// Ping checks connectivity.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// --- query helpers ---

type scanner interface {
	Scan(dest ...any) error
}

type assignment struct {
	column string
	value  any
}

func queryOne[T any](ctx context.Context, s *SQLStore, op string, scan func(scanner) (*T, error), query string, args ...any) (*T, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(query), args...)
	rec, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

func queryAll[T any](ctx context.Context, s *SQLStore, op string, scan func(scanner) (*T, error), query string, args ...any) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate rows: %w", op, err)
	}
	return out, nil
}

// updateOne applies sets to the row with the given id. An empty set list
// degrades to a plain read so the not-found contract still holds.
func updateOne[T any](ctx context.Context, s *SQLStore, op, table, columns string, id int64, sets []assignment, scan func(scanner) (*T, error)) (*T, error) {
	if len(sets) == 0 {
		return queryOne(ctx, s, op, scan,
			"SELECT "+columns+" FROM "+table+" WHERE id = ?", id)
	}

	var b strings.Builder
	args := make([]any, 0, len(sets)+1)
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	for i, a := range sets {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.column)
		b.WriteString(" = ?")
		args = append(args, a.value)
	}
	b.WriteString(" WHERE id = ? RETURNING ")
	b.WriteString(columns)
	args = append(args, id)

	return queryOne(ctx, s, op, scan, b.String(), args...)
}

func (s *SQLStore) deleteByID(ctx context.Context, op, table string, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.rebind("DELETE FROM "+table+" WHERE id = ?"), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func setRequired(sets []assignment, column string, v types.Optional[string]) []assignment {
	if v.Has() {
		sets = append(sets, assignment{column, v.Value})
	}
	return sets
}

func setNullable(sets []assignment, column string, v types.Optional[string]) []assignment {
	if !v.Set {
		return sets
	}
	var value any
	if !v.Null {
		value = v.Value
	}
	return append(sets, assignment{column, value})
}

func (s *SQLStore) setDate(sets []assignment, column string, v types.Optional[types.Timestamp]) []assignment {
	if v.Has() {
		sets = append(sets, assignment{column, s.dialect.timeArg(types.NewTimestamp(v.Value.Time).Time)})
	}
	return sets
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
