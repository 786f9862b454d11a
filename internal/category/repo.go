package category

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("category not found")
)

type Repository interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category, updateOrder bool) error
	DeleteCategory(ctx context.Context, id string) (bool, error)
	CountCategories(ctx context.Context) (int, error)

	ListSubcategories(ctx context.Context, activeOnly bool) ([]Subcategory, error)
	CreateSubcategory(ctx context.Context, s *Subcategory) error
	UpdateSubcategory(ctx context.Context, s *Subcategory, updateOrder bool) error
	DeleteSubcategory(ctx context.Context, id string) (bool, error)
	CountSubcategories(ctx context.Context, categoryID string) (int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) ListCategories(ctx context.Context, activeOnly bool) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, display_order, is_active
		FROM categories
		WHERE ($1 = false OR is_active)
		ORDER BY display_order ASC
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayOrder, &c.IsActive); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) CreateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (id, name, display_order, is_active)
		VALUES ($1,$2,$3,$4)
	`, c.ID, c.Name, c.DisplayOrder, c.IsActive)
	return err
}

func (r *PGRepo) UpdateCategory(ctx context.Context, c *Category, updateOrder bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tag pgconn.CommandTag
	var err error
	if updateOrder {
		tag, err = r.db.Exec(ctx, `
			UPDATE categories
			SET name = $2, display_order = $3, is_active = $4
			WHERE id = $1
		`, c.ID, c.Name, c.DisplayOrder, c.IsActive)
	} else {
		tag, err = r.db.Exec(ctx, `
			UPDATE categories
			SET name = $2, is_active = $3
			WHERE id = $1
		`, c.ID, c.Name, c.IsActive)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes the category together with its subcategories.
func (r *PGRepo) DeleteCategory(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM subcategories WHERE category_id=$1`, id); err != nil {
		return false, err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) CountCategories(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n)
	return n, err
}

func (r *PGRepo) ListSubcategories(ctx context.Context, activeOnly bool) ([]Subcategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, category_id, name, display_order, is_active
		FROM subcategories
		WHERE ($1 = false OR is_active)
		ORDER BY display_order ASC
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Subcategory
	for rows.Next() {
		var s Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.DisplayOrder, &s.IsActive); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) CreateSubcategory(ctx context.Context, s *Subcategory) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO subcategories (id, category_id, name, display_order, is_active)
		VALUES ($1,$2,$3,$4,$5)
	`, s.ID, s.CategoryID, s.Name, s.DisplayOrder, s.IsActive)
	return err
}

func (r *PGRepo) UpdateSubcategory(ctx context.Context, s *Subcategory, updateOrder bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tag pgconn.CommandTag
	var err error
	if updateOrder {
		tag, err = r.db.Exec(ctx, `
			UPDATE subcategories
			SET category_id = $2, name = $3, display_order = $4, is_active = $5
			WHERE id = $1
		`, s.ID, s.CategoryID, s.Name, s.DisplayOrder, s.IsActive)
	} else {
		tag, err = r.db.Exec(ctx, `
			UPDATE subcategories
			SET category_id = $2, name = $3, is_active = $4
			WHERE id = $1
		`, s.ID, s.CategoryID, s.Name, s.IsActive)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteSubcategory(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM subcategories WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) CountSubcategories(ctx context.Context, categoryID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM subcategories WHERE category_id=$1
	`, categoryID).Scan(&n)
	return n, err
}
