package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Prefs is a flat string key-value store in its own SQLite file.
type Prefs struct {
	db *sql.DB
}

func NewPrefs(path string) (*Prefs, error) {
	db, err := open(path, "prefs_schema.sql")
	if err != nil {
		return nil, err
	}
	return &Prefs{db: db}, nil
}

func (p *Prefs) Close() error { return p.db.Close() }

// PutAll upserts every pair in one transaction, so readers see either the
// old set or the new one.
func (p *Prefs) PutAll(ctx context.Context, kv map[string]string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for k, v := range kv {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO prefs(key, value) VALUES (?,?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value`, k, v,
		); err != nil {
			return fmt.Errorf("put %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// Get returns the value of key and whether it is set.
func (p *Prefs) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

// GetAll returns the values of keys that are set, read in one transaction.
func (p *Prefs) GetAll(ctx context.Context, keys ...string) (map[string]string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		var v string
		err := tx.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = ?`, k).Scan(&v)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

func (p *Prefs) Clear(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM prefs`)
	return err
}
