package checkout

import (
	"context"
	"encoding/json"
	"log"

	"github.com/stripe/stripe-go/v83"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mealcart_back_end/internal/apperr"
	"mealcart_back_end/internal/models"
)

// Mailer sends the post-payment confirmation. Optional; a nil mailer
// disables it.
type Mailer interface {
	SendPaymentConfirmation(order *models.Order) error
}

// Reconciler turns verified payment webhook events into the
// PLACED → PAID transition. Stripe retries deliveries, so the handler
// must stay idempotent: the conditional write in the store makes a
// replay a no-op that is still acknowledged.
type Reconciler struct {
	gateway PaymentGateway
	orders  OrderStore
	mailer  Mailer
}

func NewReconciler(gateway PaymentGateway, orders OrderStore, mailer Mailer) *Reconciler {
	return &Reconciler{
		gateway: gateway,
		orders:  orders,
		mailer:  mailer,
	}
}

// HandleEvent verifies the raw payload's signature before touching its
// contents, then applies the completed-checkout transition. Event types
// other than checkout.session.completed are acknowledged and dropped.
func (r *Reconciler) HandleEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := r.gateway.VerifyEvent(payload, sigHeader)
	if err != nil {
		return err
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		log.Printf("webhook: ignoring event type %s", event.Type)
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return apperr.Validation("malformed checkout session object")
	}

	orderID, err := primitive.ObjectIDFromHex(session.Metadata["orderId"])
	if err != nil {
		return apperr.Validation("event metadata carries no usable orderId")
	}

	applied, err := r.orders.MarkPaid(ctx, orderID, session.AmountTotal)
	if err != nil {
		return err
	}
	if !applied {
		log.Printf("webhook: order %s already paid, replay acknowledged", orderID.Hex())
		return nil
	}

	log.Printf("webhook: order %s marked paid, settled amount %d", orderID.Hex(), session.AmountTotal)
	r.notify(ctx, orderID)
	return nil
}

func (r *Reconciler) notify(ctx context.Context, orderID primitive.ObjectID) {
	if r.mailer == nil {
		return
	}
	order, err := r.orders.FindByID(ctx, orderID)
	if err != nil {
		log.Printf("webhook: cannot load order %s for confirmation email: %v", orderID.Hex(), err)
		return
	}
	go func() {
		if err := r.mailer.SendPaymentConfirmation(order); err != nil {
			log.Printf("webhook: confirmation email for order %s failed: %v", orderID.Hex(), err)
		}
	}()
}
