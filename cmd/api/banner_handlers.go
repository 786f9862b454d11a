package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campoverde/agroloja/internal/banner"
)

func listBannersHandler(repo banner.Repository, activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		banners, err := repo.List(c.Request.Context(), activeOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list banners"})
			return
		}
		if banners == nil {
			banners = []banner.Banner{}
		}
		c.JSON(http.StatusOK, gin.H{"items": banners})
	}
}

func bannerFromRequest(c *gin.Context) (*banner.Banner, *banner.SaveBannerRequest, bool) {
	var req banner.SaveBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return nil, nil, false
	}
	b := &banner.Banner{
		Title:       req.Title,
		Highlight:   req.Highlight,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ButtonText:  req.ButtonText,
		ButtonLink:  req.ButtonLink,
		IsActive:    true,
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	return b, &req, true
}

func createBannerHandler(repo banner.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, req, ok := bannerFromRequest(c)
		if !ok {
			return
		}
		b.ID = uuid.NewString()

		if req.DisplayOrder != nil {
			b.DisplayOrder = *req.DisplayOrder
		} else {
			n, err := repo.Count(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
				return
			}
			b.DisplayOrder = n
		}

		if err := repo.Create(c.Request.Context(), b); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

func updateBannerHandler(repo banner.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, req, ok := bannerFromRequest(c)
		if !ok {
			return
		}
		b.ID = c.Param("id")
		if req.DisplayOrder != nil {
			b.DisplayOrder = *req.DisplayOrder
		}
		if err := repo.Update(c.Request.Context(), b, req.DisplayOrder != nil); err != nil {
			if err == banner.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

func deleteBannerHandler(repo banner.Repository) gin.HandlerFunc {
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
