package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mealcart_back_end/internal/apperr"
	"mealcart_back_end/internal/checkout"
	"mealcart_back_end/internal/models"
	"mealcart_back_end/internal/store"
)

// CheckoutService runs the checkout flow and returns the gateway
// redirect URL.
type CheckoutService interface {
	CreateSession(ctx context.Context, req checkout.CheckoutRequest, userID string) (string, error)
}

// WebhookReconciler applies verified payment events to orders.
type WebhookReconciler interface {
	HandleEvent(ctx context.Context, payload []byte, sigHeader string) error
}

// OrdersBackend is the store surface the HTTP layer uses.
type OrdersBackend interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error
	Transition(ctx context.Context, id primitive.ObjectID, next models.Status) error
	ListByUser(ctx context.Context, userID string, page store.Page) (*store.OrderPage, error)
	ListByRestaurant(ctx context.Context, restaurantID string, page store.Page) (*store.OrderPage, error)
}

// RestaurantDirectory resolves an operator to the restaurant they own.
type RestaurantDirectory interface {
	GetByOwner(ctx context.Context, userID, authHeader string) (*models.Restaurant, error)
}

type Handler struct {
	checkout    CheckoutService
	reconciler  WebhookReconciler
	orders      OrdersBackend
	restaurants RestaurantDirectory

	// strictTransitions switches operator patches from the historical
	// free overwrite to successor-only transitions.
	strictTransitions bool
}

func New(checkoutSvc CheckoutService, reconciler WebhookReconciler, orders OrdersBackend, restaurants RestaurantDirectory, strictTransitions bool) *Handler {
	return &Handler{
		checkout:          checkoutSvc,
		reconciler:        reconciler,
		orders:            orders,
		restaurants:       restaurants,
		strictTransitions: strictTransitions,
	}
}

// respondError maps the apperr taxonomy onto HTTP statuses. Anything
// unclassified is logged and flattened to a generic 500.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	var appErr *apperr.Error
	if errors.As(err, &appErr) && status != http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": appErr.Msg})
		return
	}
	log.Printf("handlers: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
