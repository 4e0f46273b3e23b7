// Package storage holds the SQLite-backed stores: the advice database and
// the key-value preferences database behind the snapshot store.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed *.sql
var ddl embed.FS

var (
	// ErrForeignKey is returned when an advice item references a category
	// that does not exist.
	ErrForeignKey = errors.New("referential integrity violation")
	ErrNotFound   = errors.New("not found")
	ErrClosed     = errors.New("storage closed")
)

type DB struct{ *sql.DB }

// New opens (creating if needed) the advice database at path.
func New(path string) (*DB, error) {
	db, err := open(path, "schema.sql")
	if err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func open(path, schema string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// one writer at a time; the pool serializes statements on the handle
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := migrate(db, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return db, nil
}

func migrate(db *sql.DB, schema string) error {
	b, err := ddl.ReadFile(schema)
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

// SchemaVersion reports PRAGMA user_version.
func (d *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := d.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&v)
	return v, err
}

// ClearData removes every category and, through the cascade, every advice item.
func (d *DB) ClearData(ctx context.Context) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return err
	}
	return tx.Commit()
}

func isForeignKey(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "FOREIGN KEY")
}

func wrapWrite(op string, err error) error {
	if isForeignKey(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrForeignKey, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ---------- lazy handle -----------------------------------------------------

// Lazy opens the advice database on first use and hands every caller the
// same handle. A failed open is not cached.
type Lazy struct {
	path   string
	mu     sync.Mutex
	closed bool
	db     atomic.Pointer[DB]
}

func NewLazy(path string) *Lazy {
	return &Lazy{path: path}
}

func (l *Lazy) Get() (*DB, error) {
	if db := l.db.Load(); db != nil {
		return db, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if db := l.db.Load(); db != nil {
		return db, nil
	}
	if l.closed {
		return nil, ErrClosed
	}
	db, err := New(l.path)
	if err != nil {
		return nil, err
	}
	l.db.Store(db)
	return db, nil
}

// Close closes the handle if it was ever opened. Get fails with ErrClosed
// afterwards.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	db := l.db.Swap(nil)
	if db == nil {
		return nil
	}
	return db.Close()
}
