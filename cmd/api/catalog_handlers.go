package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campoverde/agroloja/internal/catalog"
)

// storeProductsHandler serves the storefront listing: the active catalog
// in display order, narrowed in memory by the toolbar filters the same
// way the page itself does it.
func storeProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListActive(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
			return
		}
		filtered := catalog.Filter(products,
			c.Query("category"),
			c.Query("subcategory_id"),
			c.Query("q"),
		)
		c.JSON(http.StatusOK, gin.H{"items": filtered})
	}
}

func productDetailHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func adminProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": products})
	}
}

// searchProductsHandler requires q (>= 2 chars) and returns a filtered,
// paginated page from the repository.
func searchProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if utf8.RuneCountInString(q) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q must have at least 2 characters"})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		items, err := repo.Search(c.Request.Context(), catalog.Query{Q: q, Limit: limit, Offset: offset})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
			return
		}
		c.JSON(http.StatusOK, catalog.ListResponse{Q: q, Limit: limit, Offset: offset, Items: items})
	}
}

func productFromRequest(c *gin.Context, req *catalog.SaveProductRequest) (*catalog.Product, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return nil, false
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return nil, false
	}
	p := &catalog.Product{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		SubcategoryID:   req.SubcategoryID,
		IconName:        req.IconName,
		ImageURL:        req.ImageURL,
		Characteristics: req.Characteristics,
		TechnicalSheet:  req.TechnicalSheet,
		IsActive:        true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.Price != nil {
		d, err := decimal.NewFromString(*req.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return nil, false
		}
		p.Price = &d
	}
	return p, true
}

func createProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.SaveProductRequest
		p, ok := productFromRequest(c, &req)
		if !ok {
			return
		}
		p.ID = uuid.NewString()

		if req.DisplayOrder != nil {
			p.DisplayOrder = *req.DisplayOrder
		} else {
			// new rows go last
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
		out, err := repo.GetByID(c.Request.Context(), p.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "refetch failed"})
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

func updateProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cur, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
			return
		}

		var req catalog.SaveProductRequest
		p, ok := productFromRequest(c, &req)
		if !ok {
			return
		}
		p.ID = cur.ID
		p.DisplayOrder = cur.DisplayOrder
		if req.DisplayOrder != nil {
			p.DisplayOrder = *req.DisplayOrder
		}

		if err := repo.Update(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		out, err := repo.GetByID(c.Request.Context(), p.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "refetch failed"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteProductHandler(repo catalog.Repository) gin.HandlerFunc {
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
