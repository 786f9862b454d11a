package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campoverde/agroloja/internal/category"
)

func listCategoriesHandler(repo category.Repository, activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := repo.ListCategories(c.Request.Context(), activeOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
			return
		}
		if cats == nil {
			cats = []category.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"items": cats})
	}
}

func listSubcategoriesHandler(repo category.Repository, activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs, err := repo.ListSubcategories(c.Request.Context(), activeOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list subcategories"})
			return
		}
		if subs == nil {
			subs = []category.Subcategory{}
		}
		c.JSON(http.StatusOK, gin.H{"items": subs})
	}
}

func createCategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req category.SaveCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		cat := &category.Category{ID: uuid.NewString(), Name: req.Name, IsActive: true}
		if req.IsActive != nil {
			cat.IsActive = *req.IsActive
		}
		if req.DisplayOrder != nil {
			cat.DisplayOrder = *req.DisplayOrder
		} else {
			n, err := repo.CountCategories(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
				return
			}
			cat.DisplayOrder = n
		}
		if err := repo.CreateCategory(c.Request.Context(), cat); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

func updateCategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req category.SaveCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		cat := &category.Category{ID: c.Param("id"), Name: req.Name, IsActive: true}
		if req.IsActive != nil {
			cat.IsActive = *req.IsActive
		}
		if req.DisplayOrder != nil {
			cat.DisplayOrder = *req.DisplayOrder
		}
		if err := repo.UpdateCategory(c.Request.Context(), cat, req.DisplayOrder != nil); err != nil {
			if err == category.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// deleteCategoryHandler also removes the subcategories that hang off the
// category, mirroring the confirmation shown in the admin UI.
func deleteCategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.DeleteCategory(c.Request.Context(), c.Param("id"))
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

func createSubcategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req category.SaveSubcategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		sub := &category.Subcategory{
			ID:         uuid.NewString(),
			CategoryID: req.CategoryID,
			Name:       req.Name,
			IsActive:   true,
		}
		if req.IsActive != nil {
			sub.IsActive = *req.IsActive
		}
		if req.DisplayOrder != nil {
			sub.DisplayOrder = *req.DisplayOrder
		} else {
			// order within the parent category
			n, err := repo.CountSubcategories(c.Request.Context(), req.CategoryID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
				return
			}
			sub.DisplayOrder = n
		}
		if err := repo.CreateSubcategory(c.Request.Context(), sub); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
			return
		}
		c.JSON(http.StatusCreated, sub)
	}
}

func updateSubcategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req category.SaveSubcategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		sub := &category.Subcategory{
			ID:         c.Param("id"),
			CategoryID: req.CategoryID,
			Name:       req.Name,
			IsActive:   true,
		}
		if req.IsActive != nil {
			sub.IsActive = *req.IsActive
		}
		if req.DisplayOrder != nil {
			sub.DisplayOrder = *req.DisplayOrder
		}
		if err := repo.UpdateSubcategory(c.Request.Context(), sub, req.DisplayOrder != nil); err != nil {
			if err == category.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

func deleteSubcategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.DeleteSubcategory(c.Request.Context(), c.Param("id"))
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
