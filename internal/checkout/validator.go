package checkout

import (
	"mealcart_back_end/internal/apperr"
	"mealcart_back_end/internal/models"
)

// BuildLineItems reconciles a client cart against the restaurant's menu
// snapshot. Every cart item must match a menu item by id; one miss
// aborts the whole cart. The resulting line items carry the menu's name
// and price — client-submitted display data never reaches the payment
// processor. This is the trust boundary that stops price tampering.
func BuildLineItems(cart []models.CartItem, menu []models.MenuItem) ([]models.LineItem, error) {
	byID := make(map[string]models.MenuItem, len(menu))
	for _, item := range menu {
		byID[item.ID] = item
	}

	lineItems := make([]models.LineItem, 0, len(cart))
	for _, cartItem := range cart {
		menuItem, ok := byID[cartItem.ItemID]
		if !ok {
			return nil, apperr.NotFound("menu item " + cartItem.ItemID + " not found")
		}
		lineItems = append(lineItems, models.LineItem{
			Name:      menuItem.Name,
			UnitPrice: menuItem.Price,
			Quantity:  cartItem.Quantity,
		})
	}
	return lineItems, nil
}
