package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the order lifecycle. Transitions move strictly forward; the
// PLACED → PAID step is applied by the store as a conditional write when
// the payment webhook arrives.
type Status string

const (
	StatusPlaced         Status = "PLACED"
	StatusPaid           Status = "PAID"
	StatusInProgress     Status = "IN_PROGRESS"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
)

var statusOrder = map[Status]int{
	StatusPlaced:         0,
	StatusPaid:           1,
	StatusInProgress:     2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

// Valid reports whether s is one of the known lifecycle values.
func (s Status) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// CanTransitionTo reports whether next is the direct successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	cur, ok := statusOrder[s]
	if !ok {
		return false
	}
	nxt, ok := statusOrder[next]
	if !ok {
		return false
	}
	return nxt == cur+1
}

// CartItem is what the client submits. The quantity and item id are
// trusted, the price never is: pricing always comes from the
// restaurant's menu at checkout time.
type CartItem struct {
	ItemID   string `bson:"itemId" json:"itemId" binding:"required"`
	Quantity int    `bson:"quantity" json:"quantity" binding:"required,min=1"`
	Name     string `bson:"name" json:"name"`
}

type DeliveryDetails struct {
	Email        string `bson:"email" json:"email" binding:"required"`
	Name         string `bson:"name" json:"name" binding:"required"`
	AddressLine1 string `bson:"addressLine1" json:"addressLine1" binding:"required"`
	City         string `bson:"city" json:"city" binding:"required"`
}

// Order is the persisted aggregate. CartItems is a snapshot taken at
// creation and never mutated afterwards. TotalAmount stays nil until
// the payment webhook reports the settled amount.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"userId"`
	RestaurantID    string             `bson:"restaurantId" json:"restaurantId"`
	DeliveryDetails DeliveryDetails    `bson:"deliveryDetails" json:"deliveryDetails"`
	CartItems       []CartItem         `bson:"cartItems" json:"cartItems"`
	DeliveryPrice   int64              `bson:"deliveryPrice" json:"deliveryPrice"`
	TotalAmount     *int64             `bson:"totalAmount,omitempty" json:"totalAmount,omitempty"`
	Status          Status             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
