package models

// MenuItem is the authoritative price source for one purchasable item,
// as served by the restaurant service. Price is in minor currency units.
type MenuItem struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// LineItem is a priced, quantified unit derived from a matched
// MenuItem. It is what gets sent to the payment processor; the price
// always comes from the menu, never from the client.
type LineItem struct {
	Name      string
	UnitPrice int64
	Quantity  int
}

// Restaurant is the slice of the restaurant service's record this
// service needs: identity, delivery fee and the menu snapshot.
type Restaurant struct {
	ID             string     `json:"_id"`
	Slug           string     `json:"slug"`
	RestaurantName string     `json:"restaurantName"`
	DeliveryPrice  int64      `json:"deliveryPrice"`
	MenuItems      []MenuItem `json:"menuItems"`
}
