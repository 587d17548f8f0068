package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"mealcart_back_end/internal/checkout"
	"mealcart_back_end/internal/config"
	"mealcart_back_end/internal/database"
	"mealcart_back_end/internal/handlers"
	"mealcart_back_end/internal/mail"
	"mealcart_back_end/internal/payments"
	"mealcart_back_end/internal/restaurants"
	"mealcart_back_end/internal/routes"
	"mealcart_back_end/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	stripe.Key = cfg.StripeSecretKey
	// A stalled Stripe call must not hold a checkout request forever.
	stripe.SetHTTPClient(&http.Client{Timeout: 30 * time.Second})

	ctx := context.Background()
	db, err := database.ConnectMongo(ctx, cfg)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	cache, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	orders := store.NewOrderStore(db)
	restaurantClient := restaurants.NewClient(cfg.RestaurantServiceURL, cache)
	gateway := payments.NewStripeGateway(cfg.StripeWebhookSecret, cfg.ClientURL)

	var mailer checkout.Mailer
	if cfg.MailEnabled() {
		mailer = mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
		log.Println("confirmation emails enabled")
	} else {
		log.Println("SMTP not configured, confirmation emails disabled")
	}

	checkoutSvc := checkout.NewService(restaurantClient, orders, gateway)
	reconciler := checkout.NewReconciler(gateway, orders, mailer)

	h := handlers.New(checkoutSvc, reconciler, orders, restaurantClient, cfg.StrictStatusTransitions)

	r := gin.Default()
	routes.RegisterRoutes(r, h, []byte(cfg.JWTSecret))

	log.Printf("orders service listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
