package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pharmavia_back_end/internal/models"
)

func TestMergeCartsCombinesQuantities(t *testing.T) {
	base := []models.CartItem{
		{ProductID: "p1", Name: "Doliprane", Price: 3.50, Quantity: 2, Dosage: "500mg", TabletCount: 16},
	}
	incoming := []models.CartItem{
		{ProductID: "p1", Name: "Doliprane", Price: 3.90, Quantity: 1, Dosage: "500mg", TabletCount: 16},
	}

	merged := MergeCarts(base, incoming)

	assert.Len(t, merged, 1)
	assert.Equal(t, 3, merged[0].Quantity)
	// le prix capturé du panier du compte est conservé
	assert.Equal(t, 3.50, merged[0].Price)
}

func TestMergeCartsKeepsDistinctVariants(t *testing.T) {
	base := []models.CartItem{
		{ProductID: "p1", Quantity: 1, Dosage: "500mg", TabletCount: 16},
	}
	incoming := []models.CartItem{
		{ProductID: "p1", Quantity: 1, Dosage: "1000mg", TabletCount: 8},
		{ProductID: "p2", Quantity: 2},
	}

	merged := MergeCarts(base, incoming)

	assert.Len(t, merged, 3)
}

func TestMergeCartsEmptyGuest(t *testing.T) {
	base := []models.CartItem{{ProductID: "p1", Quantity: 1}}

	merged := MergeCarts(base, nil)

	assert.Equal(t, base, merged)
}

func TestMergeCartsEmptyAccount(t *testing.T) {
	incoming := []models.CartItem{{ProductID: "p1", Quantity: 2}}

	merged := MergeCarts(nil, incoming)

	assert.Len(t, merged, 1)
	assert.Equal(t, 2, merged[0].Quantity)
}

func TestMergeCartsPrefersExistingApproval(t *testing.T) {
	base := []models.CartItem{
		{ProductID: "p1", Quantity: 1, ApprovalID: "a1"},
	}
	incoming := []models.CartItem{
		{ProductID: "p1", Quantity: 1, ApprovalID: "a2"},
	}

	merged := MergeCarts(base, incoming)

	assert.Len(t, merged, 1)
	assert.Equal(t, "a1", merged[0].ApprovalID)
}
