package routes

import (
	"github.com/gin-gonic/gin"

	"mealcart_back_end/internal/handlers"
	"mealcart_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, jwtSecret []byte) {
	r.Use(middleware.RequestID())

	api := r.Group("/api/orders")

	// The webhook is called by Stripe, not by users: signature
	// verification is its only authentication.
	api.POST("/checkout/webhook", h.StripeWebhook)

	auth := api.Group("", middleware.AuthRequired(jwtSecret))
	auth.POST("/checkout/create-checkout-session", h.CreateCheckoutSession)
	auth.GET("/user", h.GetUserOrders)
	auth.GET("/restaurant", h.GetRestaurantOrders)
	auth.PATCH("/:id/status", h.PatchOrderStatus)
}
