package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mealcart_back_end/internal/models"
	"mealcart_back_end/internal/store"
)

type statusPatchRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// PatchOrderStatus lets a restaurant operator move one of their own
// orders through the lifecycle. Ownership is checked against the
// restaurant resolved from the operator's token; orders of other
// restaurants are untouchable.
func (h *Handler) PatchOrderStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req statusPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	ctx := c.Request.Context()
	restaurant, err := h.restaurants.GetByOwner(ctx, c.GetString("user_id"), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "order belongs to another restaurant"})
		return
	}

	if h.strictTransitions {
		err = h.orders.Transition(ctx, orderID, req.Status)
	} else {
		err = h.orders.SetStatus(ctx, orderID, req.Status)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetUserOrders lists the authenticated user's orders, newest first.
func (h *Handler) GetUserOrders(c *gin.Context) {
	page, err := h.orders.ListByUser(c.Request.Context(), c.GetString("user_id"), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetRestaurantOrders lists the orders of the restaurant owned by the
// authenticated operator.
func (h *Handler) GetRestaurantOrders(c *gin.Context) {
	ctx := c.Request.Context()
	restaurant, err := h.restaurants.GetByOwner(ctx, c.GetString("user_id"), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := h.orders.ListByRestaurant(ctx, restaurant.ID, pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func pageFromQuery(c *gin.Context) store.Page {
	number, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "5"))
	return store.Page{Number: number, Size: size}
}
