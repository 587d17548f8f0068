package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"mealcart_back_end/internal/apperr"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Validation("bad cart"), http.StatusBadRequest},
		{"not_found", apperr.NotFound("no order"), http.StatusNotFound},
		{"forbidden", apperr.Forbidden("wrong restaurant"), http.StatusForbidden},
		{"unauthorized", apperr.Unauthorized("bad signature"), http.StatusUnauthorized},
		{"conflict", apperr.Conflict("illegal transition"), http.StatusConflict},
		{"upstream", apperr.Upstream("stripe down", nil), http.StatusInternalServerError},
		{"plain_error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("patch order: %w", apperr.Forbidden("wrong restaurant")), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.HTTPStatus(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", apperr.NotFound("no order"))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.False(t, apperr.Is(err, apperr.KindForbidden))
	assert.False(t, apperr.Is(errors.New("boom"), apperr.KindNotFound))
}
