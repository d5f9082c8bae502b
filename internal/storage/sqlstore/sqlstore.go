// Package sqlstore keeps the key-value medium in a single SQL table through
// dbr. PostgreSQL (lib/pq) and SQLite (go-sqlite3) are supported.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gocraft/dbr/v2"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

const table = "kv_store"

// prefixCond matches on substr rather than LIKE so that '_' and '%' in keys
// are compared literally and the match stays case sensitive on SQLite.
const prefixCond = "substr(item_key, 1, ?) = ?"

const schema = `
	CREATE TABLE IF NOT EXISTS kv_store (
		item_key   TEXT PRIMARY KEY,
		item_value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)
`

// INSERT ... ON CONFLICT is understood by both PostgreSQL and SQLite >= 3.24
const upsert = `
	INSERT INTO kv_store (item_key, item_value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (item_key) DO UPDATE SET
		item_value = excluded.item_value,
		updated_at = excluded.updated_at
`

type Medium struct {
	conn      *dbr.Connection
	sess      *dbr.Session
	namespace string
	logger    *zap.Logger
}

func New(driver, dsn, namespace string, logger *zap.Logger) (*Medium, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	conn, err := dbr.Open(driver, dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// set up connection pool
	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info("successfully connected to SQL storage", zap.String("driver", driver))

	return &Medium{
		conn:      conn,
		sess:      conn.NewSession(nil),
		namespace: namespace,
		logger:    logger,
	}, nil
}

func (m *Medium) Close() error {
	return m.conn.Close()
}

func (m *Medium) Ping(ctx context.Context) error {
	return m.conn.PingContext(ctx)
}

func (m *Medium) Get(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := m.sess.
		Select("item_value").
		From(table).
		Where("item_key = ?", key).
		LoadOneContext(ctx, &value)

	if errors.Is(err, dbr.ErrNotFound) {
		return "", false, nil
	}

	if err != nil {
		m.logger.Error("failed to get key",
			zap.String("key", key),
			zap.Error(err),
		)
		return "", false, fmt.Errorf("get: %w", err)
	}

	return value, true, nil
}

func (m *Medium) Set(ctx context.Context, key, value string) error {
	_, err := m.sess.
		InsertBySql(upsert, key, value, time.Now().UTC()).
		ExecContext(ctx)

	if err != nil {
		m.logger.Error("failed to set key",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("set: %w", err)
	}

	return nil
}

func (m *Medium) Remove(ctx context.Context, key string) error {
	_, err := m.sess.
		DeleteFrom(table).
		Where("item_key = ?", key).
		ExecContext(ctx)

	if err != nil {
		m.logger.Error("failed to delete key",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

func (m *Medium) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}

	_, err := m.sess.
		Select("item_key").
		From(table).
		Where(prefixCond, utf8.RuneCountInString(prefix), prefix).
		LoadContext(ctx, &keys)

	if err != nil {
		m.logger.Error("failed to list keys",
			zap.String("prefix", prefix),
			zap.Error(err),
		)
		return nil, fmt.Errorf("keys: %w", err)
	}

	return keys, nil
}

// Clear removes every key under the namespace
func (m *Medium) Clear(ctx context.Context) error {
	result, err := m.sess.
		DeleteFrom(table).
		Where(prefixCond, utf8.RuneCountInString(m.namespace+"_"), m.namespace+"_").
		ExecContext(ctx)

	if err != nil {
		m.logger.Error("failed to clear namespace",
			zap.String("namespace", m.namespace),
			zap.Error(err),
		)
		return fmt.Errorf("clear: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	m.logger.Warn("namespace cleared",
		zap.String("namespace", m.namespace),
		zap.Int64("count", rowsAffected),
	)

	return nil
}
