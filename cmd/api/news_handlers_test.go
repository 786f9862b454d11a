package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/campoverde/agroloja/internal/news"
)

func newNewsRouter(repo news.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/news/:slug", newsDetailHandler(repo))
	r.POST("/admin/news", createNewsHandler(repo))
	r.PUT("/admin/news/:id", updateNewsHandler(repo))
	return r
}

func TestNewsDetail_HidesUnpublished(t *testing.T) {
	t.Parallel()

	repo := &stubNewsRepo{articles: []news.Article{
		{ID: "n1", Title: "Rascunho", Slug: "rascunho", IsPublished: false},
	}}
	r := newNewsRouter(repo)

	if w := doJSON(r, http.MethodGet, "/news/rascunho", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/news/ghost", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestNewsDetail_RepoFailure(t *testing.T) {
	t.Parallel()

	repo := &stubNewsRepo{getErr: errFailed}
	r := newNewsRouter(repo)

	if w := doJSON(r, http.MethodGet, "/news/qualquer", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500 (a backend failure is not a missing article)", w.Code)
	}
}

func TestSaveNews_PublishStamp(t *testing.T) {
	t.Parallel()

	repo := &stubNewsRepo{}
	r := newNewsRouter(repo)

	w := doJSON(r, http.MethodPost, "/admin/news",
		`{"title":"Dia de campo","slug":"dia-de-campo","is_published":true}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out news.Article
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if out.PublishedAt == nil {
		t.Fatalf("published article must carry a stamp")
	}

	// unpublishing drops the stamp
	w = doJSON(r, http.MethodPut, "/admin/news/"+out.ID,
		`{"title":"Dia de campo","slug":"dia-de-campo","is_published":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	out = news.Article{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if out.PublishedAt != nil {
		t.Fatalf("unpublished article must not carry a stamp")
	}
}
