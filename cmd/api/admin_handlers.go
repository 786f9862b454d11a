package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campoverde/agroloja/internal/storage"
)

func dashboardHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		products, err := d.products.Count(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
			return
		}
		orders, err := d.orders.Count(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
			return
		}
		banners, err := d.banners.Count(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
			return
		}
		partners, err := d.partners.Count(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
			return
		}
		articles, err := d.news.Count(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"orders":   orders,
			"banners":  banners,
			"partners": partners,
			"news":     articles,
		})
	}
}

// uploadImageHandler stores a form image in the object store and returns
// the public URL that the admin forms put on their entities.
func uploadImageHandler(up *storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no image uploaded"})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if !storage.ValidImage(contentType, fileHeader.Size) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file must be an image up to 5MB"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		url, err := up.Upload(file, fileHeader.Filename, contentType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"image_url": url})
	}
}
