package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tasaronina/MyDiary/internal/models"
)

// ---------- categories ------------------------------------------------------

// GetCategory returns the category named name, or nil if there is none.
func (d *DB) GetCategory(ctx context.Context, name string) (*models.AdviceCategory, error) {
	var c models.AdviceCategory
	err := d.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE name = ?`, name).
		Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	return &c, nil
}

// EnsureCategory returns the id of the category named name, creating it on
// first use. Repeated calls return the same id.
func (d *DB) EnsureCategory(ctx context.Context, name string) (int64, error) {
	c, err := d.GetCategory(ctx, name)
	if err != nil {
		return 0, err
	}
	if c != nil {
		return c.ID, nil
	}

	if _, err := d.ExecContext(ctx,
		`INSERT INTO categories(name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name,
	); err != nil {
		return 0, fmt.Errorf("ensure category %q: %w", name, err)
	}

	c, err = d.GetCategory(ctx, name)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, fmt.Errorf("ensure category %q: %w", name, ErrNotFound)
	}
	return c.ID, nil
}

func (d *DB) ListCategories(ctx context.Context) ([]models.AdviceCategory, error) {
	rows, err := d.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []models.AdviceCategory{}
	for rows.Next() {
		var c models.AdviceCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// DeleteCategory removes a category; its advice items go with it
// (ON DELETE CASCADE).
func (d *DB) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	res, err := d.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete category %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ---------- advice ----------------------------------------------------------

// SeedIfEmpty inserts seeds into the category only when it holds no items
// yet. It reports whether anything was inserted.
func (d *DB) SeedIfEmpty(ctx context.Context, categoryID int64, seeds []models.AdviceItem) (bool, error) {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM advice WHERE category_id = ?`, categoryID,
	).Scan(&n); err != nil {
		return false, fmt.Errorf("seed category %d: %w", categoryID, err)
	}
	if n > 0 {
		return false, nil
	}

	for _, s := range seeds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO advice(title, text, category_id) VALUES (?,?,?)`,
			s.Title, s.Text, categoryID,
		); err != nil {
			return false, wrapWrite(fmt.Sprintf("seed category %d", categoryID), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return len(seeds) > 0, nil
}

// ListByCategory returns the category's items in insertion order.
func (d *DB) ListByCategory(ctx context.Context, categoryID int64) ([]models.AdviceItem, error) {
	return d.queryAdvice(ctx,
		`SELECT id, title, text, category_id FROM advice WHERE category_id = ? ORDER BY id`, categoryID)
}

func (d *DB) ListAdvice(ctx context.Context) ([]models.AdviceItem, error) {
	return d.queryAdvice(ctx, `SELECT id, title, text, category_id FROM advice ORDER BY id`)
}

func (d *DB) queryAdvice(ctx context.Context, q string, args ...any) ([]models.AdviceItem, error) {
	rows, err := d.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []models.AdviceItem{}
	for rows.Next() {
		var a models.AdviceItem
		if err := rows.Scan(&a.ID, &a.Title, &a.Text, &a.CategoryID); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// GetAdvice returns the item with id, or nil if there is none.
func (d *DB) GetAdvice(ctx context.Context, id int64) (*models.AdviceItem, error) {
	var a models.AdviceItem
	err := d.QueryRowContext(ctx,
		`SELECT id, title, text, category_id FROM advice WHERE id = ?`, id,
	).Scan(&a.ID, &a.Title, &a.Text, &a.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get advice %d: %w", id, err)
	}
	return &a, nil
}

// InsertAdvice adds one item. An unknown categoryID yields ErrForeignKey.
func (d *DB) InsertAdvice(ctx context.Context, title, text string, categoryID int64) (int64, error) {
	res, err := d.ExecContext(ctx,
		`INSERT INTO advice(title, text, category_id) VALUES (?,?,?)`, title, text, categoryID)
	if err != nil {
		return 0, wrapWrite("insert advice", err)
	}
	return res.LastInsertId()
}

// InsertAdvices adds all items in one transaction; either all land or none.
func (d *DB) InsertAdvices(ctx context.Context, items []models.AdviceItem) ([]int64, error) {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(items))
	for _, a := range items {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO advice(title, text, category_id) VALUES (?,?,?)`,
			a.Title, a.Text, a.CategoryID)
		if err != nil {
			return nil, wrapWrite("insert advices", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateAdvice replaces title and text of the item matching a.ID within
// a.CategoryID. A missing row is not an error; the bool reports a match.
func (d *DB) UpdateAdvice(ctx context.Context, a models.AdviceItem) (bool, error) {
	res, err := d.ExecContext(ctx,
		`UPDATE advice SET title = ?, text = ? WHERE id = ? AND category_id = ?`,
		a.Title, a.Text, a.ID, a.CategoryID)
	if err != nil {
		return false, fmt.Errorf("update advice %d: %w", a.ID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// DeleteAdvice removes the item with a.ID. Deleting twice is fine.
func (d *DB) DeleteAdvice(ctx context.Context, a models.AdviceItem) (bool, error) {
	res, err := d.ExecContext(ctx, `DELETE FROM advice WHERE id = ?`, a.ID)
	if err != nil {
		return false, fmt.Errorf("delete advice %d: %w", a.ID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
