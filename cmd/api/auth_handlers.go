package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campoverde/agroloja/internal/auth"
	"github.com/campoverde/agroloja/internal/httpx"
	"github.com/campoverde/agroloja/internal/order"
)

func registerHandler(repo auth.Repository, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "hash error"})
			return
		}
		u := &auth.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			PasswordHash: hash,
			Role:         auth.RoleCustomer,
		}
		p := &auth.Profile{UserID: u.ID, FullName: req.FullName, Email: req.Email}
		if err := repo.Create(c.Request.Context(), u, p); err != nil {
			if err == auth.ErrAlreadyExist {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
			return
		}
		token, err := auth.IssueToken(secret, u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
	}
}

func loginHandler(repo auth.Repository, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		u, err := repo.GetByEmail(c.Request.Context(), req.Email)
		if err != nil && !errors.Is(err, auth.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		token, err := auth.IssueToken(secret, u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
	}
}

func getProfileHandler(repo auth.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetProfile(c.Request.Context(), httpx.UserID(c))
		if errors.Is(err, auth.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func updateProfileHandler(repo auth.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p auth.Profile
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		p.UserID = httpx.UserID(c)
		if err := repo.UpdateProfile(c.Request.Context(), &p); err != nil {
			if err == auth.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func myOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.ListByUser(c.Request.Context(), httpx.UserID(c), 100, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
			return
		}
		if orders == nil {
			orders = []order.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"items": orders})
	}
}

func myOrderDetailHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
			return
		}
		// customers only see their own orders
		if o.UserID == nil || *o.UserID != httpx.UserID(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": o, "items": items})
	}
}
