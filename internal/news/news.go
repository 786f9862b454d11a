// Package news manages published articles and the homepage teaser.
package news

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("article not found")

type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	ImageURL    *string    `json:"image_url"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"published_at"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SaveArticleRequest payload of creation and update.
// swagger:model SaveArticleRequest
type SaveArticleRequest struct {
	Title       string  `json:"title" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Summary     string  `json:"summary"`
	Content     string  `json:"content"`
	ImageURL    *string `json:"image_url"`
	Author      string  `json:"author"`
	IsPublished *bool   `json:"is_published"`
}

type Repository interface {
	ListPublished(ctx context.Context, limit int) ([]Article, error)
	ListAll(ctx context.Context) ([]Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	Create(ctx context.Context, a *Article) error
	Update(ctx context.Context, a *Article) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const cols = `id, title, slug, summary, content, image_url, author, published_at, is_published, created_at`

func scanRows(rows pgx.Rows) ([]Article, error) {
	defer rows.Close()
	var out []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Slug, &a.Summary, &a.Content, &a.ImageURL,
			&a.Author, &a.PublishedAt, &a.IsPublished, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListPublished(ctx context.Context, limit int) ([]Article, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+cols+` FROM news
		WHERE is_published
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Article, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+cols+` FROM news ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a Article
	err := r.db.QueryRow(ctx, `SELECT `+cols+` FROM news WHERE slug=$1`, slug).
		Scan(&a.ID, &a.Title, &a.Slug, &a.Summary, &a.Content, &a.ImageURL,
			&a.Author, &a.PublishedAt, &a.IsPublished, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PGRepo) Create(ctx context.Context, a *Article) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO news (id, title, slug, summary, content, image_url, author, published_at, is_published, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
	`, a.ID, a.Title, a.Slug, a.Summary, a.Content, a.ImageURL, a.Author, a.PublishedAt, a.IsPublished)
	return err
}

func (r *PGRepo) Update(ctx context.Context, a *Article) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE news
		SET title = $2, slug = $3, summary = $4, content = $5, image_url = $6,
		    author = $7, published_at = $8, is_published = $9
		WHERE id = $1
	`, a.ID, a.Title, a.Slug, a.Summary, a.Content, a.ImageURL, a.Author, a.PublishedAt, a.IsPublished)
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

	cmd, err := r.db.Exec(ctx, `DELETE FROM news WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM news`).Scan(&n)
	return n, err
}
