// Package checkout turns a non-empty cart plus a validated customer
// form into a persisted order, clearing the cart on success.
package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campoverde/agroloja/internal/auth"
	"github.com/campoverde/agroloja/internal/cart"
	"github.com/campoverde/agroloja/internal/order"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError carries the per-field messages of a rejected form. No
// remote write happens when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "invalid checkout form" }

type Service struct {
	orders   order.Repository
	profiles auth.Repository
}

func NewService(orders order.Repository, profiles auth.Repository) *Service {
	return &Service{orders: orders, profiles: profiles}
}

// Prefill returns the stored profile of an authenticated customer as a
// checkout form; every field stays editable before submission. Unknown
// users get an empty form.
func (s *Service) Prefill(ctx context.Context, userID string) Form {
	if userID == "" {
		return Form{}
	}
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return Form{}
	}
	return Form{
		Name:    p.FullName,
		Phone:   p.Phone,
		Email:   p.Email,
		Address: p.Address,
		City:    p.City,
	}
}

// Submit validates the form, snapshots the cart into an order with one
// item per line, and persists both in a single transaction. The total is
// the cart subtotal at this moment; unpriced lines contribute zero. The
// caller clears the cart only after Submit returns nil, so a failed
// persistence leaves the cart (and the order store) untouched and the
// submission safe to retry.
func (s *Service) Submit(ctx context.Context, c *cart.Cart, f Form, userID string) (*order.Order, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	t := f.trimmed()
	o := &order.Order{
		ID:            uuid.NewString(),
		CustomerName:  t.Name,
		CustomerPhone: t.Phone,
		Total:         c.Subtotal(),
		Status:        order.StatusPending,
	}
	if t.Email != "" {
		o.CustomerEmail = &t.Email
	}
	if t.Address != "" {
		o.CustomerAddress = &t.Address
	}
	if t.City != "" {
		o.CustomerCity = &t.City
	}
	if t.Notes != "" {
		o.CustomerNotes = &t.Notes
	}
	if userID != "" {
		o.UserID = &userID
	}

	items := make([]order.Item, 0, len(c.Lines))
	for _, l := range c.Lines {
		price := decimal.Zero
		if l.Price != nil {
			price = *l.Price
		}
		items = append(items, order.Item{
			ID:           uuid.NewString(),
			OrderID:      o.ID,
			ProductID:    l.ProductID,
			ProductTitle: l.Title,
			Quantity:     l.Quantity,
			UnitPrice:    price,
		})
	}

	if err := s.orders.Create(ctx, o, items); err != nil {
		return nil, err
	}
	return o, nil
}
