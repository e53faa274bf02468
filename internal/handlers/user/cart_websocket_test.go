package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pharmavia_back_end/internal/models"
)

func TestCartSyncPayload_Totals(t *testing.T) {
	cart := []models.CartItem{
		{ProductID: "p1", Price: 4.50, Quantity: 2},
		{ProductID: "p2", Price: 12.90, Quantity: 1},
	}

	payload := cartSyncPayload(cart)

	assert.Equal(t, "cart_updated", payload["type"])
	assert.InDelta(t, 21.90, payload["total"].(float64), 0.0001)
	assert.Equal(t, 3, payload["count"])
	assert.Len(t, payload["items"], 2)
}

func TestCartSyncPayload_EmptyCart(t *testing.T) {
	payload := cartSyncPayload(nil)

	assert.Equal(t, "cart_updated", payload["type"])
	assert.Equal(t, 0.0, payload["total"])
	assert.Equal(t, 0, payload["count"])
	// items doit rester un tableau JSON, jamais null
	assert.NotNil(t, payload["items"])
	assert.Len(t, payload["items"], 0)
}
