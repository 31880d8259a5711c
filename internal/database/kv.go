package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"playlist-manager/internal/metrics"
)

// Get returns the value stored under key, or ErrNotFound.
func (d *Database) Get(ctx context.Context, key string) (value []byte, err error) {
	start := time.Now()
	defer func() { recordQuery("get", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err = d.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set replaces the value stored under key.
func (d *Database) Set(ctx context.Context, key string, value []byte) (err error) {
	start := time.Now()
	defer func() { recordQuery("set", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if value == nil {
		value = []byte{}
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err == nil {
		metrics.StoreBytes.WithLabelValues(key).Set(float64(len(value)))
	}
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (d *Database) Delete(ctx context.Context, key string) (err error) {
	start := time.Now()
	defer func() { recordQuery("delete", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	return err
}

// Keys lists every stored key in lexical order.
func (d *Database) Keys(ctx context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, "SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
