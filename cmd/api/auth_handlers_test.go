package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/campoverde/agroloja/internal/auth"
	"github.com/campoverde/agroloja/internal/httpx"
	"github.com/campoverde/agroloja/internal/order"
)

const testSecret = "test-secret"

func newAuthRouter(users *stubUserRepo, orders order.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", registerHandler(users, testSecret))
	r.POST("/auth/login", loginHandler(users, testSecret))

	me := r.Group("/me", httpx.Auth(testSecret))
	me.GET("/profile", getProfileHandler(users))
	me.GET("/orders/:id", myOrderDetailHandler(orders))
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	users := &stubUserRepo{}
	r := newAuthRouter(users, &stubOrderRepo{})

	w := doJSON(r, http.MethodPost, "/auth/register",
		`{"email":"maria@campo.com","password":"segredo1","full_name":"Maria"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("no session token issued")
	}
	if resp.User.Role != auth.RoleCustomer {
		t.Fatalf("role=%s, want %s", resp.User.Role, auth.RoleCustomer)
	}
	if users.user.PasswordHash == "segredo1" {
		t.Fatalf("password stored in clear")
	}

	// duplicate email
	w = doJSON(r, http.MethodPost, "/auth/register",
		`{"email":"maria@campo.com","password":"segredo1","full_name":"Maria"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register status=%d, want 409", w.Code)
	}

	// wrong password
	w = doJSON(r, http.MethodPost, "/auth/login", `{"email":"maria@campo.com","password":"errada"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status=%d, want 401", w.Code)
	}

	// unknown email gets the same answer
	w = doJSON(r, http.MethodPost, "/auth/login", `{"email":"ghost@campo.com","password":"segredo1"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email status=%d, want 401", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/auth/login", `{"email":"maria@campo.com","password":"segredo1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestLogin_RepoFailure(t *testing.T) {
	t.Parallel()

	users := &stubUserRepo{getErr: errFailed}
	r := newAuthRouter(users, &stubOrderRepo{})

	w := doJSON(r, http.MethodPost, "/auth/login", `{"email":"maria@campo.com","password":"segredo1"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500 (a backend failure is not a bad credential)", w.Code)
	}
}

func TestRegister_RejectsWeakInput(t *testing.T) {
	t.Parallel()

	r := newAuthRouter(&stubUserRepo{}, &stubOrderRepo{})

	for _, body := range []string{
		`{"email":"not-an-email","password":"segredo1","full_name":"Maria"}`,
		`{"email":"maria@campo.com","password":"123","full_name":"Maria"}`,
		`{"email":"maria@campo.com","password":"segredo1"}`,
	} {
		if w := doJSON(r, http.MethodPost, "/auth/register", body); w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status=%d, want 400", body, w.Code)
		}
	}
}

func TestProfile_RequiresToken(t *testing.T) {
	t.Parallel()

	r := newAuthRouter(&stubUserRepo{}, &stubOrderRepo{})
	if w := doJSON(r, http.MethodGet, "/me/profile", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", w.Code)
	}
}

func TestMyOrderDetail_OnlyOwnOrders(t *testing.T) {
	t.Parallel()

	users := &stubUserRepo{
		user:    &auth.User{ID: "user-1", Email: "maria@campo.com", Role: auth.RoleCustomer},
		profile: &auth.Profile{UserID: "user-1", FullName: "Maria"},
	}
	other := "user-2"
	orders := &stubOrderRepo{lastOrder: &order.Order{ID: "o1", UserID: &other}}
	r := newAuthRouter(users, orders)

	token, err := auth.IssueToken(testSecret, users.user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := doJSONReq(http.MethodGet, "/me/orders/o1", "")
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign order status=%d, want 404", w.Code)
	}

	mine := "user-1"
	orders.lastOrder.UserID = &mine
	req = doJSONReq(http.MethodGet, "/me/orders/o1", "")
	req.Header.Set("Authorization", "Bearer "+token)
	if w := serve(r, req); w.Code != http.StatusOK {
		t.Fatalf("own order status=%d body=%s", w.Code, w.Body.String())
	}
}
