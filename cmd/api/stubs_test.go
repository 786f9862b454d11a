package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/campoverde/agroloja/internal/auth"
	"github.com/campoverde/agroloja/internal/banner"
	"github.com/campoverde/agroloja/internal/cart"
	"github.com/campoverde/agroloja/internal/catalog"
	"github.com/campoverde/agroloja/internal/news"
	"github.com/campoverde/agroloja/internal/order"
)

//
// ---------- STUBS & FAKES ----------
//

var errFailed = errors.New("backend unavailable")

// memCartStore keeps one cart per token, copying on both sides so the
// handler mutates nothing until it saves, like the real store.
type memCartStore struct {
	carts   map[string]*cart.Cart
	saves   int
	loadErr error
	saveErr error
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: map[string]*cart.Cart{}}
}

func copyCart(c *cart.Cart) *cart.Cart {
	cp := &cart.Cart{Open: c.Open}
	cp.Lines = append([]cart.Line(nil), c.Lines...)
	return cp
}

func (s *memCartStore) Load(ctx context.Context, token string) (*cart.Cart, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if c, ok := s.carts[token]; ok {
		return copyCart(c), nil
	}
	return cart.New(), nil
}

func (s *memCartStore) Save(ctx context.Context, token string, c *cart.Cart) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.carts[token] = copyCart(c)
	s.saves++
	return nil
}

// stubProductRepo serves catalog reads and writes from a slice.
type stubProductRepo struct {
	products []catalog.Product
	getErr   error
}

func (s *stubProductRepo) Create(ctx context.Context, p *catalog.Product) error {
	s.products = append(s.products, *p)
	return nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for i := range s.products {
		if s.products[i].ID == id {
			cp := s.products[i]
			return &cp, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (s *stubProductRepo) ListActive(ctx context.Context) ([]catalog.Product, error) {
	out := []catalog.Product{}
	for _, p := range s.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) ListAll(ctx context.Context) ([]catalog.Product, error) {
	return append([]catalog.Product(nil), s.products...), nil
}

func (s *stubProductRepo) Search(ctx context.Context, q catalog.Query) ([]catalog.Product, error) {
	out := []catalog.Product{}
	needle := strings.ToLower(q.Q)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) Update(ctx context.Context, p *catalog.Product) error {
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = *p
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (s *stubProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubProductRepo) Count(ctx context.Context) (int, error) { return len(s.products), nil }

// stubOrderRepo records the last persisted order.
type stubOrderRepo struct {
	lastOrder *order.Order
	lastItems []order.Item
	createErr error
	getErr    error
}

func (s *stubOrderRepo) Create(ctx context.Context, o *order.Order, items []order.Item) error {
	if s.createErr != nil {
		return s.createErr
	}
	cp := *o
	s.lastOrder = &cp
	s.lastItems = append([]order.Item(nil), items...)
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id string) (*order.Order, []order.Item, error) {
	if s.getErr != nil {
		return nil, nil, s.getErr
	}
	if s.lastOrder == nil || s.lastOrder.ID != id {
		return nil, nil, order.ErrNotFound
	}
	return s.lastOrder, s.lastItems, nil
}

func (s *stubOrderRepo) ListAll(ctx context.Context, limit, offset int) ([]order.Order, error) {
	if s.lastOrder == nil {
		return []order.Order{}, nil
	}
	return []order.Order{*s.lastOrder}, nil
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]order.Order, error) {
	if s.lastOrder != nil && s.lastOrder.UserID != nil && *s.lastOrder.UserID == userID {
		return []order.Order{*s.lastOrder}, nil
	}
	return []order.Order{}, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if s.lastOrder == nil || s.lastOrder.ID != id {
		return order.ErrNotFound
	}
	s.lastOrder.Status = status
	return nil
}

func (s *stubOrderRepo) GetItems(ctx context.Context, orderID string) ([]order.Item, error) {
	if s.lastOrder == nil || s.lastOrder.ID != orderID {
		return nil, order.ErrNotFound
	}
	return s.lastItems, nil
}

func (s *stubOrderRepo) Count(ctx context.Context) (int, error) {
	if s.lastOrder == nil {
		return 0, nil
	}
	return 1, nil
}

// stubUserRepo holds at most one user and profile.
type stubUserRepo struct {
	user    *auth.User
	profile *auth.Profile
	getErr  error
}

func (s *stubUserRepo) Create(ctx context.Context, u *auth.User, p *auth.Profile) error {
	if s.user != nil && s.user.Email == u.Email {
		return auth.ErrAlreadyExist
	}
	s.user, s.profile = u, p
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*auth.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, auth.ErrNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.user == nil || s.user.Email != email {
		return nil, auth.ErrNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) GetProfile(ctx context.Context, userID string) (*auth.Profile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.profile == nil || s.profile.UserID != userID {
		return nil, auth.ErrNotFound
	}
	return s.profile, nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, p *auth.Profile) error {
	if s.profile == nil || s.profile.UserID != p.UserID {
		return auth.ErrNotFound
	}
	s.profile = p
	return nil
}

// stubBannerRepo keeps banners in a slice, honoring the updateOrder flag.
type stubBannerRepo struct {
	banners []banner.Banner
}

func (s *stubBannerRepo) List(ctx context.Context, activeOnly bool) ([]banner.Banner, error) {
	out := []banner.Banner{}
	for _, b := range s.banners {
		if activeOnly && !b.IsActive {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *stubBannerRepo) Create(ctx context.Context, b *banner.Banner) error {
	s.banners = append(s.banners, *b)
	return nil
}

func (s *stubBannerRepo) Update(ctx context.Context, b *banner.Banner, updateOrder bool) error {
	for i := range s.banners {
		if s.banners[i].ID == b.ID {
			keep := s.banners[i].DisplayOrder
			s.banners[i] = *b
			if !updateOrder {
				s.banners[i].DisplayOrder = keep
			}
			return nil
		}
	}
	return banner.ErrNotFound
}

func (s *stubBannerRepo) Delete(ctx context.Context, id string) (bool, error) {
	for i := range s.banners {
		if s.banners[i].ID == id {
			s.banners = append(s.banners[:i], s.banners[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubBannerRepo) Count(ctx context.Context) (int, error) { return len(s.banners), nil }

// stubNewsRepo keeps articles in a slice.
type stubNewsRepo struct {
	articles []news.Article
	getErr   error
}

func (s *stubNewsRepo) ListPublished(ctx context.Context, limit int) ([]news.Article, error) {
	var out []news.Article
	for _, a := range s.articles {
		if a.IsPublished && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubNewsRepo) ListAll(ctx context.Context) ([]news.Article, error) {
	return append([]news.Article(nil), s.articles...), nil
}

func (s *stubNewsRepo) GetBySlug(ctx context.Context, slug string) (*news.Article, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for i := range s.articles {
		if s.articles[i].Slug == slug {
			return &s.articles[i], nil
		}
	}
	return nil, news.ErrNotFound
}

func (s *stubNewsRepo) Create(ctx context.Context, a *news.Article) error {
	s.articles = append(s.articles, *a)
	return nil
}

func (s *stubNewsRepo) Update(ctx context.Context, a *news.Article) error {
	for i := range s.articles {
		if s.articles[i].ID == a.ID {
			created := s.articles[i].CreatedAt
			s.articles[i] = *a
			s.articles[i].CreatedAt = created
			return nil
		}
	}
	return news.ErrNotFound
}

func (s *stubNewsRepo) Delete(ctx context.Context, id string) (bool, error) {
	for i := range s.articles {
		if s.articles[i].ID == id {
			s.articles = append(s.articles[:i], s.articles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubNewsRepo) Count(ctx context.Context) (int, error) { return len(s.articles), nil }

func decp(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("bad decimal %q: %v", s, err))
	}
	return &d
}
