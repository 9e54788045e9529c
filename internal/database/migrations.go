package database

import (
	"context"
	"database/sql"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// migration is a single versioned schema change.
type migration struct {
	version int
	name    string
	up      string
}

func getMigrations() []migration {
	return []migration{
		{
			version: 1,
			name:    "initial_schema",
			up: `
CREATE TABLE IF NOT EXISTS user_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    timestamp TEXT NOT NULL,
    activity_minutes INTEGER,
    sleep_hours REAL,
    water_intake_ml INTEGER,
    calories INTEGER,
    heart_rate INTEGER,
    steps INTEGER,
    mood TEXT
);

CREATE INDEX IF NOT EXISTS idx_user_logs_user_ts
    ON user_logs(user_id, timestamp DESC);

CREATE TABLE IF NOT EXISTS user_profiles (
    user_id TEXT PRIMARY KEY,
    age INTEGER,
    weight_kg REAL,
    height_cm REAL,
    health_goals TEXT,
    medical_conditions TEXT
);

CREATE TABLE IF NOT EXISTS suggestions (
    suggestion_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    timestamp TEXT NOT NULL,
    category TEXT,
    text TEXT,
    reasoning TEXT,
    confidence_score REAL,
    source TEXT
);

CREATE INDEX IF NOT EXISTS idx_suggestions_user_ts
    ON suggestions(user_id, timestamp DESC);
`,
		},
	}
}

// migrate applies pending migrations in version order.
func (db *DB) migrate(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
)`)
	if err != nil {
		return types.WrapError(types.DB_MIGRATION_FAILED, "failed to create migrations table", err)
	}

	current, err := db.currentVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range getMigrations() {
		if m.version <= current {
			continue
		}
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.up); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
				m.version, m.name)
			return err
		})
		if err != nil {
			return types.WrapError(types.DB_MIGRATION_FAILED,
				"migration "+m.name+" failed", err)
		}
	}
	return nil
}

func (db *DB) currentVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := db.conn.QueryRowContext(ctx,
		"SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, types.WrapError(types.DB_MIGRATION_FAILED, "failed to read schema version", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
