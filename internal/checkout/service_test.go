package checkout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mealcart_back_end/internal/apperr"
	"mealcart_back_end/internal/checkout"
	"mealcart_back_end/internal/models"
	"mealcart_back_end/internal/payments"
)

type mockRestaurants struct {
	getBySlugFunc func(ctx context.Context, slug string) (*models.Restaurant, error)
}

func (m *mockRestaurants) GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	return m.getBySlugFunc(ctx, slug)
}

type mockOrders struct {
	created      []*models.Order
	createErr    error
	markPaidFunc func(ctx context.Context, id primitive.ObjectID, amount int64) (bool, error)
	findByIDFunc func(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
}

func (m *mockOrders) Create(ctx context.Context, order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	order.ID = primitive.NewObjectID()
	m.created = append(m.created, order)
	return nil
}

func (m *mockOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, apperr.NotFound("order not found")
}

func (m *mockOrders) MarkPaid(ctx context.Context, id primitive.ObjectID, amount int64) (bool, error) {
	if m.markPaidFunc != nil {
		return m.markPaidFunc(ctx, id, amount)
	}
	return false, apperr.NotFound("order not found")
}

type mockGateway struct {
	createFunc func(ctx context.Context, input payments.SessionInput) (string, error)
	verifyFunc func(payload []byte, sigHeader string) (stripe.Event, error)
}

func (m *mockGateway) CreateSession(ctx context.Context, input payments.SessionInput) (string, error) {
	return m.createFunc(ctx, input)
}

func (m *mockGateway) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return m.verifyFunc(payload, sigHeader)
}

func testRestaurant() *models.Restaurant {
	return &models.Restaurant{
		ID:            "rest-1",
		Slug:          "best-burgers",
		DeliveryPrice: 299,
		MenuItems: []models.MenuItem{
			{ID: "m1", Name: "Burger", Price: 899},
		},
	}
}

func testRequest() checkout.CheckoutRequest {
	return checkout.CheckoutRequest{
		CartItems:      []models.CartItem{{ItemID: "m1", Quantity: 2}},
		RestaurantSlug: "best-burgers",
		DeliveryDetails: models.DeliveryDetails{
			Email:        "jo@example.com",
			Name:         "Jo",
			AddressLine1: "1 Main St",
			City:         "Springfield",
		},
	}
}

func TestService_CreateSession(t *testing.T) {
	t.Run("happy_path", func(t *testing.T) {
		orders := &mockOrders{}
		var gotInput payments.SessionInput
		gateway := &mockGateway{
			createFunc: func(ctx context.Context, input payments.SessionInput) (string, error) {
				gotInput = input
				return "https://pay.example.com/cs_123", nil
			},
		}
		svc := checkout.NewService(&mockRestaurants{
			getBySlugFunc: func(ctx context.Context, slug string) (*models.Restaurant, error) {
				return testRestaurant(), nil
			},
		}, orders, gateway)

		url, err := svc.CreateSession(context.Background(), testRequest(), "user-7")
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/cs_123", url)

		require.Len(t, orders.created, 1)
		order := orders.created[0]
		assert.Equal(t, models.StatusPlaced, order.Status)
		assert.Nil(t, order.TotalAmount)
		assert.Equal(t, "user-7", order.UserID)
		assert.Equal(t, "rest-1", order.RestaurantID)
		assert.Equal(t, int64(299), order.DeliveryPrice)

		// The session is bound to the freshly persisted order and
		// priced from the menu, not the cart.
		assert.Equal(t, order.ID.Hex(), gotInput.OrderID)
		assert.Equal(t, "rest-1", gotInput.RestaurantID)
		assert.Equal(t, int64(299), gotInput.DeliveryPrice)
		require.Len(t, gotInput.LineItems, 1)
		assert.Equal(t, models.LineItem{Name: "Burger", UnitPrice: 899, Quantity: 2}, gotInput.LineItems[0])
	})

	t.Run("unknown_restaurant", func(t *testing.T) {
		orders := &mockOrders{}
		svc := checkout.NewService(&mockRestaurants{
			getBySlugFunc: func(ctx context.Context, slug string) (*models.Restaurant, error) {
				return nil, apperr.NotFound("restaurant not found")
			},
		}, orders, &mockGateway{})

		_, err := svc.CreateSession(context.Background(), testRequest(), "user-7")
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		assert.Empty(t, orders.created)
	})

	t.Run("unmatched_cart_item_creates_no_order", func(t *testing.T) {
		orders := &mockOrders{}
		svc := checkout.NewService(&mockRestaurants{
			getBySlugFunc: func(ctx context.Context, slug string) (*models.Restaurant, error) {
				return testRestaurant(), nil
			},
		}, orders, &mockGateway{})

		req := testRequest()
		req.CartItems = append(req.CartItems, models.CartItem{ItemID: "ghost", Quantity: 1})
		_, err := svc.CreateSession(context.Background(), req, "user-7")
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		assert.Empty(t, orders.created)
	})

	t.Run("gateway_failure_leaves_placed_order", func(t *testing.T) {
		orders := &mockOrders{}
		gateway := &mockGateway{
			createFunc: func(ctx context.Context, input payments.SessionInput) (string, error) {
				return "", apperr.Upstream("stripe session create failed", nil)
			},
		}
		svc := checkout.NewService(&mockRestaurants{
			getBySlugFunc: func(ctx context.Context, slug string) (*models.Restaurant, error) {
				return testRestaurant(), nil
			},
		}, orders, gateway)

		_, err := svc.CreateSession(context.Background(), testRequest(), "user-7")
		assert.True(t, apperr.Is(err, apperr.KindUpstream))

		// The orphaned order is the documented outcome: durable, still
		// PLACED, no rollback on the request path.
		require.Len(t, orders.created, 1)
		assert.Equal(t, models.StatusPlaced, orders.created[0].Status)
		assert.Nil(t, orders.created[0].TotalAmount)
	})
}
