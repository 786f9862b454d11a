package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists carts keyed by an opaque client token. The contract is
// read on init, write on every mutation; a token that was never saved
// loads as an empty cart.
type Store interface {
	Load(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, token string, c *Cart) error
}

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) Load(ctx context.Context, token string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		raw  []byte
		open bool
	)
	err := s.db.QueryRow(ctx, `
		SELECT items, is_open FROM carts WHERE token=$1
	`, token).Scan(&raw, &open)
	if errors.Is(err, pgx.ErrNoRows) {
		return New(), nil // unknown token starts an empty cart
	}
	if err != nil {
		// anything else must surface: a caller that mutates and saves an
		// empty cart here would overwrite the stored one
		return nil, err
	}

	c := New()
	c.Open = open
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &c.Lines); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (s *PGStore) Save(ctx context.Context, token string, c *Cart) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	items, err := json.Marshal(c.Lines)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO carts (token, items, is_open, updated_at)
		VALUES ($1,$2,$3,NOW())
		ON CONFLICT (token) DO UPDATE
		SET items = EXCLUDED.items, is_open = EXCLUDED.is_open, updated_at = NOW()
	`, token, items, c.Open)
	return err
}
