package payement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pharmavia_back_end/internal/models"
)

func TestCalcTotal(t *testing.T) {
	items := []models.CartItem{
		{Price: 5.99, Quantity: 2},
		{Price: 12.99, Quantity: 1},
	}

	assert.InDelta(t, 24.97, calcTotal(items), 0.001)
}

func TestCalcTotalEmpty(t *testing.T) {
	assert.Equal(t, 0.0, calcTotal(nil))
}
