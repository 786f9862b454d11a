package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campoverde/agroloja/internal/partner"
)

func listPartnersHandler(repo partner.Repository, activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		partners, err := repo.List(c.Request.Context(), activeOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list partners"})
			return
		}
		if partners == nil {
			partners = []partner.Partner{}
		}
		c.JSON(http.StatusOK, gin.H{"items": partners})
	}
}

func partnerFromRequest(c *gin.Context) (*partner.Partner, *partner.SavePartnerRequest, bool) {
	var req partner.SavePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return nil, nil, false
	}
	p := &partner.Partner{
		Name:       req.Name,
		LogoURL:    req.LogoURL,
		WebsiteURL: req.WebsiteURL,
		IsActive:   true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return p, &req, true
}

func createPartnerHandler(repo partner.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, req, ok := partnerFromRequest(c)
		if !ok {
			return
		}
		p.ID = uuid.NewString()

		if req.DisplayOrder != nil {
			p.DisplayOrder = *req.DisplayOrder
		} else {
			n, err := repo.Count(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
				return
			}
			p.DisplayOrder = n
		}

		if err := repo.Create(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updatePartnerHandler(repo partner.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, req, ok := partnerFromRequest(c)
		if !ok {
			return
		}
		p.ID = c.Param("id")
		if req.DisplayOrder != nil {
			p.DisplayOrder = *req.DisplayOrder
		}
		if err := repo.Update(c.Request.Context(), p, req.DisplayOrder != nil); err != nil {
			if err == partner.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deletePartnerHandler(repo partner.Repository) gin.HandlerFunc {
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
