// Package catalog provides the repository interface and PostgreSQL
// implementation for managing products.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Query struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	ListActive(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, q Query) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectCols = `
	p.id, p.title, p.description, p.category_id, p.subcategory_id,
	COALESCE(c.name, ''), p.icon_name, p.image_url, p.price::text,
	p.characteristics, p.technical_sheet,
	p.display_order, p.is_active, p.created_at, p.updated_at
`

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p        Product
		rawPrice *string
		rawChar  []byte
		rawTech  []byte
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.CategoryID, &p.SubcategoryID,
		&p.CategoryName, &p.IconName, &p.ImageURL, &rawPrice,
		&rawChar, &rawTech,
		&p.DisplayOrder, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if rawPrice != nil {
		d, err := decimal.NewFromString(*rawPrice)
		if err != nil {
			return nil, err
		}
		p.Price = &d
	}
	if len(rawChar) > 0 {
		_ = json.Unmarshal(rawChar, &p.Characteristics)
	}
	if len(rawTech) > 0 {
		_ = json.Unmarshal(rawTech, &p.TechnicalSheet)
	}
	return &p, nil
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	char, _ := json.Marshal(p.Characteristics)
	tech, _ := json.Marshal(p.TechnicalSheet)
	var price *string
	if p.Price != nil {
		s := p.Price.String()
		price = &s
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, title, description, category_id, subcategory_id,
			icon_name, image_url, price, characteristics, technical_sheet,
			display_order, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8::numeric,$9,$10,$11,$12,NOW(),NOW())
	`, p.ID, p.Title, p.Description, p.CategoryID, p.SubcategoryID,
		p.IconName, p.ImageURL, price, char, tech, p.DisplayOrder, p.IsActive)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT`+selectCols+`
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id=$1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PGRepo) list(ctx context.Context, where string, args ...any) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT`+selectCols+`
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ListActive returns the storefront catalog in display order.
func (r *PGRepo) ListActive(ctx context.Context) ([]Product, error) {
	return r.list(ctx, `WHERE p.is_active ORDER BY p.display_order ASC, p.created_at ASC`)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Product, error) {
	return r.list(ctx, `ORDER BY p.display_order ASC, p.created_at ASC`)
}

func (r *PGRepo) Search(ctx context.Context, q Query) ([]Product, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	search := strings.TrimSpace(q.Q)

	return r.list(ctx, `
		WHERE ($1 = '' OR p.title ILIKE '%'||$1||'%' OR p.description ILIKE '%'||$1||'%')
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
}

func (r *PGRepo) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	char, _ := json.Marshal(p.Characteristics)
	tech, _ := json.Marshal(p.TechnicalSheet)
	var price *string
	if p.Price != nil {
		s := p.Price.String()
		price = &s
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET title = $2, description = $3, category_id = $4, subcategory_id = $5,
		    icon_name = $6, image_url = $7, price = $8::numeric,
		    characteristics = $9, technical_sheet = $10,
		    display_order = $11, is_active = $12, updated_at = NOW()
		WHERE id = $1
	`, p.ID, p.Title, p.Description, p.CategoryID, p.SubcategoryID,
		p.IconName, p.ImageURL, price, char, tech, p.DisplayOrder, p.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
