// Package sqlitekv provides a SQLite-backed [kv.KV], so persisted bindings survive across process runs.
package sqlitekv

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"github.com/saylorsolutions/eventx/kv"
	_ "modernc.org/sqlite"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

//go:embed schema.sql
var schema string

var _ kv.KV = (*Store)(nil)

// Store persists key-value pairs in a single SQLite table.
// Pattern reads return values in insertion order, and overwriting a key keeps its position.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// All access goes through one connection.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func nowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}

const upsertSQL = `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, upsertSQL, key, value, nowMillis()); err != nil {
		return fmt.Errorf("set key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

func (s *Store) MultiGet(ctx context.Context, pattern string) ([]string, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT value FROM kv_entries WHERE key GLOB ? ORDER BY rowid`, pattern)
	if err != nil {
		return nil, fmt.Errorf("query pattern %s: %w", pattern, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var vals []string
	for rows.Next() {
		var val string
		if err := rows.Scan(&val); err != nil {
			return nil, fmt.Errorf("scan pattern %s: %w", pattern, err)
		}
		vals = append(vals, val)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pattern %s: %w", pattern, err)
	}
	return vals, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := s.check(ctx); err != nil {
		return "", err
	}
	var val string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&val)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", kv.ErrNotFound, key)
		}
		return "", fmt.Errorf("get key %s: %w", key, err)
	}
	return val, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if err := s.check(ctx); err != nil {
		return false, err
	}
	var found int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM kv_entries WHERE key = ?)`, key).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check key %s: %w", key, err)
	}
	return found == 1, nil
}

func (s *Store) MultiDelete(ctx context.Context, pattern string) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM kv_entries WHERE key GLOB ?`, pattern)
	if err != nil {
		return 0, fmt.Errorf("delete pattern %s: %w", pattern, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete pattern %s: %w", pattern, err)
	}
	return int(n), nil
}

func (s *Store) Increment(ctx context.Context, key string, by int64) (int64, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin increment %s: %w", key, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	var (
		raw string
		cur int64
	)
	err = tx.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return 0, fmt.Errorf("read counter %s: %w", key, err)
	default:
		cur, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", kv.ErrNotInteger, key)
		}
	}
	cur += by
	if _, err := tx.ExecContext(ctx, upsertSQL, key, strconv.FormatInt(cur, 10), nowMillis()); err != nil {
		return 0, fmt.Errorf("write counter %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit counter %s: %w", key, err)
	}
	return cur, nil
}

func (s *Store) Decrement(ctx context.Context, key string, by int64) (int64, error) {
	return s.Increment(ctx, key, -by)
}

func (s *Store) Append(ctx context.Context, key, value string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = kv_entries.value || excluded.value, updated_at = excluded.updated_at`,
		key, value, nowMillis(),
	)
	if err != nil {
		return fmt.Errorf("append key %s: %w", key, err)
	}
	return nil
}
