package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/campoverde/agroloja/internal/banner"
	"github.com/campoverde/agroloja/internal/order"
)

func newAdminRouter(banners banner.Repository, orders order.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/banners", listBannersHandler(banners, true))
	r.GET("/admin/banners", listBannersHandler(banners, false))
	r.POST("/admin/banners", createBannerHandler(banners))
	r.PUT("/admin/banners/:id", updateBannerHandler(banners))
	r.DELETE("/admin/banners/:id", deleteBannerHandler(banners))
	r.GET("/admin/orders/:id", adminOrderDetailHandler(orders))
	r.PUT("/admin/orders/:id/status", updateOrderStatusHandler(orders))
	return r
}

func doJSONReq(method, target, body string) *http.Request {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, buf)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	return serve(r, doJSONReq(method, target, body))
}

func bannerFixture() *stubBannerRepo {
	return &stubBannerRepo{banners: []banner.Banner{
		{ID: "b1", Title: "Safra 2026", DisplayOrder: 0, IsActive: true},
		{ID: "b2", Title: "Dia de campo", DisplayOrder: 1, IsActive: false},
	}}
}

func TestCreateBanner_DefaultsDisplayOrderToEnd(t *testing.T) {
	t.Parallel()

	repo := bannerFixture()
	r := newAdminRouter(repo, &stubOrderRepo{})

	w := doJSON(r, http.MethodPost, "/admin/banners", `{"title":"Promoção de sementes","image_url":"https://cdn.campoverde.ag/banners/promo.jpg"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out banner.Banner
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if out.DisplayOrder != 2 {
		t.Fatalf("display_order=%d, want 2 (appended last)", out.DisplayOrder)
	}
	if !out.IsActive {
		t.Fatalf("new banners default to active")
	}
}

func TestCreateBanner_ExplicitDisplayOrderWins(t *testing.T) {
	t.Parallel()

	r := newAdminRouter(bannerFixture(), &stubOrderRepo{})

	w := doJSON(r, http.MethodPost, "/admin/banners", `{"title":"Topo","image_url":"https://cdn.campoverde.ag/banners/topo.jpg","display_order":0}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out banner.Banner
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if out.DisplayOrder != 0 {
		t.Fatalf("display_order=%d, want 0", out.DisplayOrder)
	}
}

func TestUpdateBanner_OmittedDisplayOrderIsPreserved(t *testing.T) {
	t.Parallel()

	repo := bannerFixture()
	r := newAdminRouter(repo, &stubOrderRepo{})

	w := doJSON(r, http.MethodPut, "/admin/banners/b2", `{"title":"Dia de campo 2026","image_url":"https://cdn.campoverde.ag/banners/dia.jpg","is_active":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := repo.banners[1].DisplayOrder; got != 1 {
		t.Fatalf("display_order=%d, update without the field must keep 1", got)
	}
	if repo.banners[1].Title != "Dia de campo 2026" || !repo.banners[1].IsActive {
		t.Fatalf("fields not updated: %+v", repo.banners[1])
	}
}

func TestUpdateBanner_NotFound(t *testing.T) {
	t.Parallel()

	r := newAdminRouter(bannerFixture(), &stubOrderRepo{})
	if w := doJSON(r, http.MethodPut, "/admin/banners/ghost", `{"title":"X","image_url":"https://cdn.campoverde.ag/banners/x.jpg"}`); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestListBanners_ActiveOnlyForStorefront(t *testing.T) {
	t.Parallel()

	r := newAdminRouter(bannerFixture(), &stubOrderRepo{})

	var resp struct {
		Items []banner.Banner `json:"items"`
	}
	w := doJSON(r, http.MethodGet, "/banners", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "b1" {
		t.Fatalf("storefront must only see active banners: %+v", resp.Items)
	}

	resp.Items = nil
	w = doJSON(r, http.MethodGet, "/admin/banners", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("admin must see every banner, got %d", len(resp.Items))
	}
}

func TestDeleteBanner(t *testing.T) {
	t.Parallel()

	repo := bannerFixture()
	r := newAdminRouter(repo, &stubOrderRepo{})

	if w := doJSON(r, http.MethodDelete, "/admin/banners/b1", ""); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if w := doJSON(r, http.MethodDelete, "/admin/banners/b1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("second delete status=%d, want 404", w.Code)
	}
}

func TestAdminOrderDetail_RepoFailure(t *testing.T) {
	t.Parallel()

	orders := &stubOrderRepo{lastOrder: &order.Order{ID: "o1", Status: order.StatusPending}, getErr: errFailed}
	r := newAdminRouter(bannerFixture(), orders)

	if w := doJSON(r, http.MethodGet, "/admin/orders/o1", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500 (a backend failure is not a missing order)", w.Code)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Parallel()

	orders := &stubOrderRepo{lastOrder: &order.Order{ID: "o1", Status: order.StatusPending}}
	r := newAdminRouter(bannerFixture(), orders)

	if w := doJSON(r, http.MethodPut, "/admin/orders/o1/status", `{"status":"shipped"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: status=%d, want 400", w.Code)
	}
	if w := doJSON(r, http.MethodPut, "/admin/orders/ghost/status", `{"status":"confirmed"}`); w.Code != http.StatusNotFound {
		t.Fatalf("unknown order: status=%d, want 404", w.Code)
	}

	w := doJSON(r, http.MethodPut, "/admin/orders/o1/status", `{"status":"confirmed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if orders.lastOrder.Status != order.StatusConfirmed {
		t.Fatalf("status=%s, want confirmed", orders.lastOrder.Status)
	}
}
