package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campoverde/agroloja/internal/checkout"
	"github.com/campoverde/agroloja/internal/httpx"
)

func prefillHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := svc.Prefill(c.Request.Context(), httpx.UserID(c))
		c.JSON(http.StatusOK, form)
	}
}

// submitOrderHandler drives Editing -> Submitting -> Placed. A rejected
// form returns the per-field messages and writes nothing; a persistence
// error leaves the cart untouched so the client can retry. Only after
// the order is stored is the cart cleared (drawer state preserved) and
// the WhatsApp handoff link computed.
func submitOrderHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkout.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}

		token := cartToken(c)
		ct, err := d.carts.Load(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		lines := ct.Lines
		o, err := d.checkout.Submit(c.Request.Context(), ct, form, httpx.UserID(c))
		if err != nil {
			var ve *checkout.ValidationError
			switch {
			case errors.As(err, &ve):
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
			case errors.Is(err, checkout.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit order"})
			}
			return
		}

		ct.Clear()
		if err := d.carts.Save(c.Request.Context(), token, ct); err != nil {
			// the order is already placed; a stale cart on the next load
			// is the lesser problem
			log.Printf("[checkout] cart save after order %s failed: %v", o.ID, err)
		}

		c.JSON(http.StatusCreated, gin.H{
			"order":        o,
			"whatsapp_url": checkout.WhatsAppLink(d.cfg.WhatsAppNumber, lines),
		})
	}
}
