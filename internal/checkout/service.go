package checkout

import (
	"context"
	"log"

	"github.com/stripe/stripe-go/v83"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mealcart_back_end/internal/models"
	"mealcart_back_end/internal/payments"
)

// RestaurantSource supplies the authoritative restaurant record,
// menu and delivery fee included.
type RestaurantSource interface {
	GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
}

// PaymentGateway creates hosted checkout sessions and verifies inbound
// webhook payloads.
type PaymentGateway interface {
	CreateSession(ctx context.Context, input payments.SessionInput) (string, error)
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

// OrderStore is the slice of the store the checkout flow needs.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID, amount int64) (bool, error)
}

// CheckoutRequest is the client-submitted checkout body. Prices are
// deliberately absent from the shape; they would be ignored anyway.
type CheckoutRequest struct {
	CartItems       []models.CartItem      `json:"cartItems" binding:"required,min=1,dive"`
	DeliveryDetails models.DeliveryDetails `json:"deliveryDetails" binding:"required"`
	RestaurantSlug  string                 `json:"restaurantSlug" binding:"required"`
}

// Service orchestrates checkout: resolve the restaurant, validate cart
// prices, persist the order, then open the payment session.
type Service struct {
	restaurants RestaurantSource
	orders      OrderStore
	gateway     PaymentGateway
}

func NewService(restaurants RestaurantSource, orders OrderStore, gateway PaymentGateway) *Service {
	return &Service{
		restaurants: restaurants,
		orders:      orders,
		gateway:     gateway,
	}
}

// CreateSession runs the checkout flow and returns the gateway redirect
// URL. The order is durably stored as PLACED before the gateway call,
// because the session metadata references its id; if the gateway then
// fails, the order deliberately stays behind for the reconciliation
// sweep to pick up.
func (s *Service) CreateSession(ctx context.Context, req CheckoutRequest, userID string) (string, error) {
	restaurant, err := s.restaurants.GetBySlug(ctx, req.RestaurantSlug)
	if err != nil {
		return "", err
	}

	lineItems, err := BuildLineItems(req.CartItems, restaurant.MenuItems)
	if err != nil {
		return "", err
	}

	order := &models.Order{
		UserID:          userID,
		RestaurantID:    restaurant.ID,
		DeliveryDetails: req.DeliveryDetails,
		CartItems:       req.CartItems,
		DeliveryPrice:   restaurant.DeliveryPrice,
		Status:          models.StatusPlaced,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return "", err
	}

	url, err := s.gateway.CreateSession(ctx, payments.SessionInput{
		OrderID:       order.ID.Hex(),
		RestaurantID:  restaurant.ID,
		LineItems:     lineItems,
		DeliveryPrice: restaurant.DeliveryPrice,
	})
	if err != nil {
		log.Printf("checkout: session creation failed, order %s left PLACED: %v", order.ID.Hex(), err)
		return "", err
	}
	return url, nil
}
