package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mealcart_back_end/internal/models"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from models.Status
		to   models.Status
		want bool
	}{
		{"placed_to_paid", models.StatusPlaced, models.StatusPaid, true},
		{"paid_to_in_progress", models.StatusPaid, models.StatusInProgress, true},
		{"in_progress_to_out_for_delivery", models.StatusInProgress, models.StatusOutForDelivery, true},
		{"out_for_delivery_to_delivered", models.StatusOutForDelivery, models.StatusDelivered, true},
		{"no_skipping_forward", models.StatusPlaced, models.StatusInProgress, false},
		{"no_going_backward", models.StatusPaid, models.StatusPlaced, false},
		{"no_self_transition", models.StatusPaid, models.StatusPaid, false},
		{"delivered_is_terminal", models.StatusDelivered, models.StatusPlaced, false},
		{"unknown_source", models.Status("CANCELLED"), models.StatusPaid, false},
		{"unknown_target", models.StatusPlaced, models.Status("CANCELLED"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []models.Status{
		models.StatusPlaced, models.StatusPaid, models.StatusInProgress,
		models.StatusOutForDelivery, models.StatusDelivered,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, models.Status("REFUNDED").Valid())
	assert.False(t, models.Status("").Valid())
}
