package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
	"github.com/stripe/stripe-go/v83/webhook"

	"mealcart_back_end/internal/apperr"
	"mealcart_back_end/internal/models"
)

const currency = "usd"

// SessionInput is everything a checkout session needs: validated line
// items, the delivery fee, and the order/restaurant binding that the
// webhook uses later to find the order again.
type SessionInput struct {
	OrderID       string
	RestaurantID  string
	LineItems     []models.LineItem
	DeliveryPrice int64
}

// StripeGateway creates hosted checkout sessions and verifies inbound
// webhook payloads. The API key is installed globally at startup; the
// endpoint secret stays here.
type StripeGateway struct {
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripeGateway(webhookSecret, clientURL string) *StripeGateway {
	return &StripeGateway{
		webhookSecret: webhookSecret,
		successURL:    clientURL + "/order-status?success=true",
		cancelURL:     clientURL + "/detail?canceled=true",
	}
}

// CreateSession creates a payment-mode checkout session with a
// fixed-amount Delivery shipping option and returns the hosted redirect
// URL.
func (g *StripeGateway) CreateSession(ctx context.Context, input SessionInput) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.LineItems))
	for _, item := range input.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(item.UnitPrice),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		LineItems:  lineItems,
		ShippingOptions: []*stripe.CheckoutSessionShippingOptionParams{
			{
				ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
					DisplayName: stripe.String("Delivery"),
					Type:        stripe.String("fixed_amount"),
					FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
						Amount:   stripe.Int64(input.DeliveryPrice),
						Currency: stripe.String(currency),
					},
				},
			},
		},
	}
	params.Context = ctx
	// The metadata is the only channel binding the asynchronous webhook
	// back to the local order.
	params.AddMetadata("orderId", input.OrderID)
	params.AddMetadata("restaurantId", input.RestaurantID)

	s, err := session.New(params)
	if err != nil {
		return "", apperr.Upstream("stripe session create failed", err)
	}
	if s.URL == "" {
		return "", apperr.Upstream(fmt.Sprintf("stripe session %s has no redirect url", s.ID), nil)
	}
	return s.URL, nil
}

// VerifyEvent checks the payload signature against the endpoint secret
// and parses the event. Nothing is parsed before the signature check.
func (g *StripeGateway) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return stripe.Event{}, apperr.Unauthorized("invalid webhook signature")
	}
	return event, nil
}
