package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	Create(ctx context.Context, o *Order, items []Item) error
	GetByID(ctx context.Context, id string) (*Order, []Item, error)
	ListAll(ctx context.Context, limit, offset int) ([]Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	GetItems(ctx context.Context, orderID string) ([]Item, error)
	Count(ctx context.Context) (int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Create writes the order header and every item in one transaction, so
// a failed item insert can never leave an orphaned header behind.
func (r *PGRepo) Create(ctx context.Context, o *Order, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, customer_name, customer_phone, customer_email,
      customer_address, customer_city, customer_notes, total, status, user_id, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8::numeric,$9,$10,NOW())
  `, o.ID, o.CustomerName, o.CustomerPhone, o.CustomerEmail,
		o.CustomerAddress, o.CustomerCity, o.CustomerNotes,
		o.Total.String(), o.Status, o.UserID); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, product_title, quantity, unit_price)
      VALUES ($1,$2,$3,$4,$5,$6::numeric)
    `, it.ID, o.ID, it.ProductID, it.ProductTitle, it.Quantity, it.UnitPrice.String()); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		total string
	)
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail,
		&o.CustomerAddress, &o.CustomerCity, &o.CustomerNotes,
		&total, &o.Status, &o.UserID, &o.CreatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return nil, err
	}
	o.Total = d
	return &o, nil
}

const orderCols = `id, customer_name, customer_phone, customer_email,
  customer_address, customer_city, customer_notes, total::text, status, user_id, created_at`

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, []Item, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `
    SELECT `+orderCols+` FROM orders WHERE id=$1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	items, err := r.GetItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

func (r *PGRepo) listOrders(ctx context.Context, where string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderCols+` FROM orders `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (r *PGRepo) ListAll(ctx context.Context, limit, offset int) ([]Order, error) {
	limit, offset = clampPage(limit, offset)
	return r.listOrders(ctx, `ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error) {
	limit, offset = clampPage(limit, offset)
	return r.listOrders(ctx, `WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders SET status = $2 WHERE id = $1
  `, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) GetItems(ctx context.Context, orderID string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, product_id, product_title, quantity, unit_price::text
    FROM order_items
    WHERE order_id = $1
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductTitle, &it.Quantity, &price); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		it.UnitPrice = d
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}
