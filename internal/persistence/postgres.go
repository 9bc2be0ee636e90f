package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresKV keeps one row per key in the kv_store table.
type PostgresKV struct {
	db *sqlx.DB
}

func NewPostgresKV(db *sql.DB) *PostgresKV {
	return &PostgresKV{db: sqlx.NewDb(db, "postgres")}
}

func (r *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.GetContext(ctx, &value, `SELECT value FROM kv_store WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (r *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys, mostly for the CLI.
func (r *PostgresKV) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.db.SelectContext(ctx, &keys, `SELECT key FROM kv_store ORDER BY key`); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}
