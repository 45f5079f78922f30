package sqlite

import (
	"context"
	"database/sql"
)

// The progress_state table is the engine's key-value persistence
// backend. It satisfies domain.Store.

// Get retrieves a value by key. ok is false when the key is absent.
func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM progress_state WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores a key-value pair, overwriting any existing value.
func (d *DB) Set(ctx context.Context, key, value string) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO progress_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// Remove deletes a key. Removing an absent key is a no-op.
func (d *DB) Remove(ctx context.Context, key string) error {
	_, err := d.db.ExecContext(ctx,
		`DELETE FROM progress_state WHERE key = ?`, key,
	)
	return err
}
