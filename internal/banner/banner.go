// Package banner manages the hero carousel slides.
package banner

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("banner not found")

type Banner struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Highlight    string `json:"highlight"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	ButtonText   string `json:"button_text"`
	ButtonLink   string `json:"button_link"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

// SaveBannerRequest payload of creation and update.
// swagger:model SaveBannerRequest
type SaveBannerRequest struct {
	Title        string `json:"title" binding:"required"`
	Highlight    string `json:"highlight"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url" binding:"required"`
	ButtonText   string `json:"button_text"`
	ButtonLink   string `json:"button_link"`
	DisplayOrder *int   `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Banner, error)
	Create(ctx context.Context, b *Banner) error
	Update(ctx context.Context, b *Banner, updateOrder bool) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) List(ctx context.Context, activeOnly bool) ([]Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, title, highlight, description, image_url, button_text, button_link, display_order, is_active
		FROM banners
		WHERE ($1 = false OR is_active)
		ORDER BY display_order ASC
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Banner
	for rows.Next() {
		var b Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Highlight, &b.Description, &b.ImageURL,
			&b.ButtonText, &b.ButtonLink, &b.DisplayOrder, &b.IsActive); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PGRepo) Create(ctx context.Context, b *Banner) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO banners (id, title, highlight, description, image_url, button_text, button_link, display_order, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, b.ID, b.Title, b.Highlight, b.Description, b.ImageURL, b.ButtonText, b.ButtonLink, b.DisplayOrder, b.IsActive)
	return err
}

// Update rewrites the banner; the stored display_order is kept unless
// updateOrder is set.
func (r *PGRepo) Update(ctx context.Context, b *Banner, updateOrder bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tag pgconn.CommandTag
	var err error
	if updateOrder {
		tag, err = r.db.Exec(ctx, `
			UPDATE banners
			SET title = $2, highlight = $3, description = $4, image_url = $5,
			    button_text = $6, button_link = $7, display_order = $8, is_active = $9
			WHERE id = $1
		`, b.ID, b.Title, b.Highlight, b.Description, b.ImageURL, b.ButtonText, b.ButtonLink, b.DisplayOrder, b.IsActive)
	} else {
		tag, err = r.db.Exec(ctx, `
			UPDATE banners
			SET title = $2, highlight = $3, description = $4, image_url = $5,
			    button_text = $6, button_link = $7, is_active = $8
			WHERE id = $1
		`, b.ID, b.Title, b.Highlight, b.Description, b.ImageURL, b.ButtonText, b.ButtonLink, b.IsActive)
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

	cmd, err := r.db.Exec(ctx, `DELETE FROM banners WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM banners`).Scan(&n)
	return n, err
}
