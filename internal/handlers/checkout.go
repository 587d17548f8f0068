package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mealcart_back_end/internal/checkout"
)

// CreateCheckoutSession validates the submitted cart against the
// restaurant's menu, stores the order and answers with the hosted
// payment page URL.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req checkout.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout request", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	url, err := h.checkout.CreateSession(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// StripeWebhook receives payment events. No caller authentication
// beyond the payload signature; a non-2xx answer makes Stripe redeliver
// the event, which is the only retry mechanism relied upon.
func (h *Handler) StripeWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}

	if err := h.reconciler.HandleEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
