package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmavia_back_end/internal/models"
)

func TestApplyStatusTransition_StampsOutForDeliveryOnce(t *testing.T) {
	order := &models.Order{Status: models.StatusPacked}
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	stamp := applyStatusTransition(order, models.StatusOutForDelivery, now)

	assert.True(t, stamp)
	require.NotNil(t, order.OutForDeliveryAt)
	assert.Equal(t, now, *order.OutForDeliveryAt)
	assert.Equal(t, models.StatusOutForDelivery, order.Status)
	assert.Equal(t, now, order.UpdatedAt)
}

func TestApplyStatusTransition_RepeatedOutForDeliveryKeepsFirstStamp(t *testing.T) {
	first := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	order := &models.Order{
		Status:           models.StatusOutForDelivery,
		OutForDeliveryAt: &first,
	}

	later := first.Add(2 * time.Hour)
	stamp := applyStatusTransition(order, models.StatusOutForDelivery, later)

	assert.False(t, stamp)
	require.NotNil(t, order.OutForDeliveryAt)
	assert.Equal(t, first, *order.OutForDeliveryAt, "l'horodatage du premier passage ne doit jamais être réécrit")
}

func TestApplyStatusTransition_DeliveredKeepsStamp(t *testing.T) {
	first := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	order := &models.Order{
		Status:           models.StatusOutForDelivery,
		OutForDeliveryAt: &first,
	}

	stamp := applyStatusTransition(order, models.StatusDelivered, first.Add(6*time.Hour))

	assert.False(t, stamp)
	assert.Equal(t, first, *order.OutForDeliveryAt)
	assert.Equal(t, models.StatusDelivered, order.Status)
}

func TestApplyStatusTransition_OtherStatusesNeverStamp(t *testing.T) {
	order := &models.Order{Status: models.StatusProcessing}

	stamp := applyStatusTransition(order, models.StatusPacked, time.Now())

	assert.False(t, stamp)
	assert.Nil(t, order.OutForDeliveryAt)
}
