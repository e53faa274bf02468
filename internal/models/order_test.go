package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_HappyPath(t *testing.T) {
	assert.True(t, CanTransition(StatusProcessing, StatusPacked))
	assert.True(t, CanTransition(StatusPacked, StatusOutForDelivery))
	assert.True(t, CanTransition(StatusOutForDelivery, StatusDelivered))
}

func TestCanTransition_NoSkipping(t *testing.T) {
	assert.False(t, CanTransition(StatusProcessing, StatusOutForDelivery))
	assert.False(t, CanTransition(StatusProcessing, StatusDelivered))
	assert.False(t, CanTransition(StatusPacked, StatusDelivered))
}

func TestCanTransition_NoGoingBack(t *testing.T) {
	assert.False(t, CanTransition(StatusPacked, StatusProcessing))
	assert.False(t, CanTransition(StatusDelivered, StatusOutForDelivery))
}

func TestCanTransition_CancelledFromAnyStateExceptDelivered(t *testing.T) {
	assert.True(t, CanTransition(StatusProcessing, StatusCancelled))
	assert.True(t, CanTransition(StatusPacked, StatusCancelled))
	assert.True(t, CanTransition(StatusOutForDelivery, StatusCancelled))
	assert.False(t, CanTransition(StatusDelivered, StatusCancelled))
}

func TestCanTransition_SameStatusIsIdempotent(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.True(t, CanTransition(s, s), s)
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	assert.False(t, CanTransition(StatusCancelled, StatusProcessing))
	assert.False(t, CanTransition(StatusCancelled, StatusPacked))
	assert.False(t, CanTransition(StatusDelivered, StatusProcessing))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("shipped"))
	assert.False(t, IsValidStatus(""))
}
