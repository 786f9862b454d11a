package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campoverde/agroloja/internal/cart"
	"github.com/campoverde/agroloja/internal/catalog"
)

const cartTokenHeader = "X-Cart-Token"

// cartToken returns the client's cart token, minting one when absent.
// The token is always echoed back so the client can persist it.
func cartToken(c *gin.Context) string {
	token := c.GetHeader(cartTokenHeader)
	if token == "" {
		token = uuid.NewString()
	}
	c.Writer.Header().Set(cartTokenHeader, token)
	return token
}

func cartResponse(ct *cart.Cart) gin.H {
	items := ct.Lines
	if items == nil {
		items = []cart.Line{}
	}
	return gin.H{
		"items":       items,
		"is_open":     ct.Open,
		"total_items": ct.TotalItems(),
		"subtotal":    ct.Subtotal(),
	}
}

// withCart loads the cart for the request token, applies fn, and saves
// the result. Every mutation goes through here so the persisted state
// never lags the in-memory one.
func withCart(store cart.Store, c *gin.Context, fn func(ct *cart.Cart)) {
	token := cartToken(c)
	ct, err := store.Load(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	fn(ct)
	if err := store.Save(c.Request.Context(), token, ct); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(ct))
}

func getCartHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, err := store.Load(c.Request.Context(), cartToken(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(ct))
	}
}

type addItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

// addCartItemHandler snapshots the product into a cart line; repeat adds
// bump the quantity. Products without a price are still cartable.
func addCartItemHandler(store cart.Store, products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input addItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		p, err := products.GetByID(c.Request.Context(), input.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product does not exist"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
			return
		}
		withCart(store, c, func(ct *cart.Cart) {
			ct.AddItem(cart.Line{
				ProductID: p.ID,
				Title:     p.Title,
				Category:  p.CategoryName,
				ImageURL:  p.ImageURL,
				Price:     p.Price,
			})
		})
	}
}

type updateQuantityInput struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input updateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		withCart(store, c, func(ct *cart.Cart) {
			ct.UpdateQuantity(c.Param("product_id"), input.Quantity)
		})
	}
}

func removeCartItemHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		withCart(store, c, func(ct *cart.Cart) {
			ct.RemoveItem(c.Param("product_id"))
		})
	}
}

func clearCartHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		withCart(store, c, func(ct *cart.Cart) {
			ct.Clear()
		})
	}
}

type drawerInput struct {
	IsOpen bool `json:"is_open"`
}

func drawerHandler(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input drawerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		withCart(store, c, func(ct *cart.Cart) {
			ct.SetOpen(input.IsOpen)
		})
	}
}
