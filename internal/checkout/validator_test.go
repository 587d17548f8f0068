package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealcart_back_end/internal/apperr"
	"mealcart_back_end/internal/checkout"
	"mealcart_back_end/internal/models"
)

func TestBuildLineItems(t *testing.T) {
	menu := []models.MenuItem{
		{ID: "m1", Name: "Burger", Price: 899},
		{ID: "m2", Name: "Fries", Price: 349},
	}

	tests := []struct {
		name    string
		cart    []models.CartItem
		menu    []models.MenuItem
		want    []models.LineItem
		wantErr bool
	}{
		{
			name: "single_item_uses_menu_price",
			cart: []models.CartItem{{ItemID: "m1", Quantity: 2}},
			menu: menu,
			want: []models.LineItem{{Name: "Burger", UnitPrice: 899, Quantity: 2}},
		},
		{
			name: "multiple_items_preserve_quantities",
			cart: []models.CartItem{
				{ItemID: "m2", Quantity: 3},
				{ItemID: "m1", Quantity: 1},
			},
			menu: menu,
			want: []models.LineItem{
				{Name: "Fries", UnitPrice: 349, Quantity: 3},
				{Name: "Burger", UnitPrice: 899, Quantity: 1},
			},
		},
		{
			name: "client_display_name_never_wins",
			cart: []models.CartItem{{ItemID: "m1", Quantity: 1, Name: "Burger but free"}},
			menu: menu,
			want: []models.LineItem{{Name: "Burger", UnitPrice: 899, Quantity: 1}},
		},
		{
			name: "unmatched_item_aborts_everything",
			cart: []models.CartItem{
				{ItemID: "m1", Quantity: 1},
				{ItemID: "ghost", Quantity: 1},
			},
			menu:    menu,
			wantErr: true,
		},
		{
			name:    "empty_menu_matches_nothing",
			cart:    []models.CartItem{{ItemID: "m1", Quantity: 1}},
			menu:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checkout.BuildLineItems(tt.cart, tt.menu)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindNotFound))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
