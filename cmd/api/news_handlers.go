package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campoverde/agroloja/internal/news"
)

func publishedNewsHandler(repo news.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		articles, err := repo.ListPublished(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list news"})
			return
		}
		if articles == nil {
			articles = []news.Article{}
		}
		c.JSON(http.StatusOK, gin.H{"items": articles})
	}
}

func newsDetailHandler(repo news.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := repo.GetBySlug(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, news.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
			return
		}
		if !a.IsPublished {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func allNewsHandler(repo news.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		articles, err := repo.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list news"})
			return
		}
		if articles == nil {
			articles = []news.Article{}
		}
		c.JSON(http.StatusOK, gin.H{"items": articles})
	}
}

func articleFromRequest(c *gin.Context) (*news.Article, bool) {
	var req news.SaveArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return nil, false
	}
	a := &news.Article{
		Title:    req.Title,
		Slug:     req.Slug,
		Summary:  req.Summary,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Author:   req.Author,
	}
	if req.IsPublished != nil {
		a.IsPublished = *req.IsPublished
	}
	// every save of a published article refreshes the stamp; an
	// unpublished article carries none
	if a.IsPublished {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}
	return a, true
}

func createNewsHandler(repo news.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := articleFromRequest(c)
		if !ok {
			return
		}
		a.ID = uuid.NewString()
		if err := repo.Create(c.Request.Context(), a); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

func updateNewsHandler(repo news.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := articleFromRequest(c)
		if !ok {
			return
		}
		a.ID = c.Param("id")
		if err := repo.Update(c.Request.Context(), a); err != nil {
			if err == news.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func deleteNewsHandler(repo news.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
