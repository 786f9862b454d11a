// Package partner manages the partner logo strip.
package partner

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("partner not found")

type Partner struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	LogoURL      string  `json:"logo_url"`
	WebsiteURL   *string `json:"website_url"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
}

// SavePartnerRequest payload of creation and update.
// swagger:model SavePartnerRequest
type SavePartnerRequest struct {
	Name         string  `json:"name" binding:"required"`
	LogoURL      string  `json:"logo_url" binding:"required"`
	WebsiteURL   *string `json:"website_url"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Partner, error)
	Create(ctx context.Context, p *Partner) error
	Update(ctx context.Context, p *Partner, updateOrder bool) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) List(ctx context.Context, activeOnly bool) ([]Partner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, logo_url, website_url, display_order, is_active
		FROM partners
		WHERE ($1 = false OR is_active)
		ORDER BY display_order ASC
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Partner
	for rows.Next() {
		var p Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.LogoURL, &p.WebsiteURL, &p.DisplayOrder, &p.IsActive); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Create(ctx context.Context, p *Partner) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO partners (id, name, logo_url, website_url, display_order, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, p.ID, p.Name, p.LogoURL, p.WebsiteURL, p.DisplayOrder, p.IsActive)
	return err
}

func (r *PGRepo) Update(ctx context.Context, p *Partner, updateOrder bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tag pgconn.CommandTag
	var err error
	if updateOrder {
		tag, err = r.db.Exec(ctx, `
			UPDATE partners
			SET name = $2, logo_url = $3, website_url = $4, display_order = $5, is_active = $6
			WHERE id = $1
		`, p.ID, p.Name, p.LogoURL, p.WebsiteURL, p.DisplayOrder, p.IsActive)
	} else {
		tag, err = r.db.Exec(ctx, `
			UPDATE partners
			SET name = $2, logo_url = $3, website_url = $4, is_active = $5
			WHERE id = $1
		`, p.ID, p.Name, p.LogoURL, p.WebsiteURL, p.IsActive)
	}
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

	cmd, err := r.db.Exec(ctx, `DELETE FROM partners WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM partners`).Scan(&n)
	return n, err
}
