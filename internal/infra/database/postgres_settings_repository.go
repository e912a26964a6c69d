package database

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresSettingsRepository implements settings.Store over the shared
// system_config table (key TEXT PRIMARY KEY, value TEXT). The notification
// ledger, the quota counters and the daily run marker are all rows here.
type PostgresSettingsRepository struct {
	db *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// Get returns the value for key, or def when the key is absent. Transient
// network errors are retried; an unrecovered error returns def along with
// the error so callers can degrade to defaults.
func (r *PostgresSettingsRepository) Get(ctx context.Context, key, def string) (string, error) {
	value, err := withRetry(ctx, func(ctx context.Context) (string, error) {
		var v string
		err := r.db.QueryRowContext(ctx, `SELECT value FROM system_config WHERE key = $1`, key).Scan(&v)
		if err == sql.ErrNoRows {
			return def, nil
		}
		if err != nil {
			return "", err
		}
		return v, nil
	})
	if err != nil {
		return def, fmt.Errorf("error getting config %q: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for key.
func (r *PostgresSettingsRepository) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO system_config (key, value) VALUES ($1, $2)
               ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("error setting config %q: %w", key, err)
	}
	return nil
}
