package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmavia_back_end/internal/models"
)

var (
	productA = gocql.TimeUUID()
	productB = gocql.TimeUUID()
	gatedID  = gocql.TimeUUID()
)

func testCatalog() *MockCatalog {
	return &MockCatalog{Products: map[gocql.UUID]*models.Product{
		productA: {ID: productA, Name: "Doliprane 500mg", Price: 5.99, IsActive: true},
		productB: {ID: productB, Name: "Spray nasal Xylo", Price: 12.99, IsActive: true},
		gatedID:  {ID: gatedID, Name: "Sildénafil 50mg", Price: 34.90, IsActive: true, RequiresPrescription: true},
	}}
}

func testCart() *MockCart {
	return &MockCart{Items: []models.CartItem{
		{ProductID: productA.String(), Name: "Doliprane 500mg", Price: 5.99, Quantity: 2},
		{ProductID: productB.String(), Name: "Spray nasal Xylo", Price: 12.99, Quantity: 1},
	}}
}

func newService(cart *MockCart, orders *MockOrders) (*Service, *MockPayments, *MockNotifier) {
	payments := &MockPayments{}
	notify := &MockNotifier{}
	svc := &Service{
		Payments:  payments,
		Cart:      cart,
		Catalog:   testCatalog(),
		Approvals: &MockApprovals{Approvals: map[gocql.UUID]*models.QuestionnaireApproval{}},
		Orders:    orders,
		Notify:    notify,
	}
	return svc, payments, notify
}

func input() CreateOrderInput {
	return CreateOrderInput{
		PaymentIntentID: "pi_123",
		UserID:          "user-1",
		Email:           "client@example.com",
		CartKey:         "cart:user-1",
		ShippingAddress: models.Address{FullName: "Jean Dupont", Street: "1 rue de la Paix", City: "Paris", PostalCode: "75002", Country: "FR"},
		BillingAddress:  models.Address{FullName: "Jean Dupont", Street: "1 rue de la Paix", City: "Paris", PostalCode: "75002", Country: "FR"},
	}
}

func TestCreateOrder_EndToEnd(t *testing.T) {
	cart := testCart()
	orders := &MockOrders{}
	svc, _, notify := newService(cart, orders)

	res, err := svc.CreateOrder(context.Background(), input())

	require.NoError(t, err)
	require.NotNil(t, res.Order)
	assert.False(t, res.AlreadyExisted)

	// subtotal = 5.99×2 + 12.99 = 24.97, shipping = 0
	assert.InDelta(t, 24.97, res.Order.Subtotal, 0.001)
	assert.InDelta(t, 0.0, res.Order.ShippingCost, 0.001)
	assert.InDelta(t, res.Order.Subtotal+res.Order.ShippingCost, res.Order.Total, 0.001)
	assert.Equal(t, models.StatusProcessing, res.Order.Status)
	assert.Len(t, res.Order.Items, 2)

	assert.True(t, orders.ItemsInserted)
	assert.True(t, cart.Cleared)
	assert.Equal(t, []string{"client@example.com"}, notify.Sent)
}

func TestCreateOrder_TotalsMatchLineItems(t *testing.T) {
	orders := &MockOrders{}
	svc, _, _ := newService(testCart(), orders)

	res, err := svc.CreateOrder(context.Background(), input())
	require.NoError(t, err)

	var sum float64
	for _, item := range res.Order.Items {
		sum += item.PriceAtTime * float64(item.Quantity)
	}
	assert.InDelta(t, sum, res.Order.Subtotal, 0.001)
	assert.InDelta(t, sum+res.Order.ShippingCost, res.Order.Total, 0.001)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	orders := &MockOrders{}
	svc, _, _ := newService(&MockCart{}, orders)

	res, err := svc.CreateOrder(context.Background(), input())

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, res)
	assert.Nil(t, orders.InsertedOrder)
}

func TestCreateOrder_PaymentNotSucceeded(t *testing.T) {
	cart := testCart()
	orders := &MockOrders{}
	svc, payments, _ := newService(cart, orders)
	payments.Err = fmt.Errorf("%w: statut requires_action", ErrPaymentNotSucceeded)

	res, err := svc.CreateOrder(context.Background(), input())

	require.ErrorIs(t, err, ErrPaymentNotSucceeded)
	assert.Nil(t, res)
	// Rien n'est persisté et le panier reste intact
	assert.Nil(t, orders.InsertedOrder)
	assert.False(t, orders.ItemsInserted)
	assert.False(t, cart.Cleared)
}

func TestCreateOrder_PaymentLookupFailure(t *testing.T) {
	orders := &MockOrders{}
	svc, payments, _ := newService(testCart(), orders)
	payments.Err = fmt.Errorf("%w: connexion refusée", ErrPaymentCheckFailed)

	_, err := svc.CreateOrder(context.Background(), input())

	require.ErrorIs(t, err, ErrPaymentCheckFailed)
	assert.Nil(t, orders.InsertedOrder)
}

func TestCreateOrder_OrderInsertFailure_NoCompensation(t *testing.T) {
	cart := testCart()
	orders := &MockOrders{InsertOrderErr: errBoom}
	svc, _, _ := newService(cart, orders)

	_, err := svc.CreateOrder(context.Background(), input())

	require.ErrorIs(t, err, ErrPersistOrder)
	// Rien n'a été créé : aucune suppression compensatoire
	assert.Nil(t, orders.DeletedOrder)
	assert.False(t, cart.Cleared)
}

func TestCreateOrder_ItemInsertFailure_CompensatingDelete(t *testing.T) {
	cart := testCart()
	orders := &MockOrders{InsertItemsErr: errBoom}
	svc, _, notify := newService(cart, orders)

	_, err := svc.CreateOrder(context.Background(), input())

	require.ErrorIs(t, err, ErrPersistOrder)
	// La commande parente insérée doit avoir été supprimée
	require.NotNil(t, orders.InsertedOrder)
	require.NotNil(t, orders.DeletedOrder)
	assert.Equal(t, orders.InsertedOrder.ID, orders.DeletedOrder.ID)
	assert.False(t, cart.Cleared)
	assert.Empty(t, notify.Sent)
}

func TestCreateOrder_DuplicatePaymentIntent(t *testing.T) {
	existing := gocql.TimeUUID()
	cart := testCart()
	orders := &MockOrders{ExistingID: &existing}
	svc, _, notify := newService(cart, orders)

	res, err := svc.CreateOrder(context.Background(), input())

	require.NoError(t, err)
	assert.True(t, res.AlreadyExisted)
	assert.Equal(t, existing, res.Order.ID)
	// Pas de doublon, pas de second e-mail, panier intact
	assert.Nil(t, orders.InsertedOrder)
	assert.False(t, cart.Cleared)
	assert.Empty(t, notify.Sent)
}

func TestCreateOrder_DedupeLookupFailureStillCreates(t *testing.T) {
	cart := testCart()
	orders := &MockOrders{FindErr: errBoom}
	svc, _, _ := newService(cart, orders)

	res, err := svc.CreateOrder(context.Background(), input())

	// Index d'idempotence injoignable : le checkout aboutit quand même
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	assert.False(t, res.AlreadyExisted)
	assert.NotNil(t, orders.InsertedOrder)
	assert.True(t, orders.ItemsInserted)
}

func TestCreateOrder_ClearFailureIsSoft(t *testing.T) {
	cart := testCart()
	cart.ClearErr = errBoom
	orders := &MockOrders{}
	svc, _, _ := newService(cart, orders)

	res, err := svc.CreateOrder(context.Background(), input())

	// La commande est actée même si le panier n'a pas pu être vidé
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	assert.True(t, orders.ItemsInserted)
}

func TestCreateOrder_PriceCapturedAtAddTime(t *testing.T) {
	cart := testCart()
	orders := &MockOrders{}
	svc, _, _ := newService(cart, orders)

	// Le prix vivant du produit A a changé depuis l'ajout au panier
	svc.Catalog.(*MockCatalog).Products[productA].Price = 9.99

	res, err := svc.CreateOrder(context.Background(), input())
	require.NoError(t, err)

	assert.InDelta(t, 5.99, res.Order.Items[0].PriceAtTime, 0.001)
	assert.InDelta(t, 24.97, res.Order.Subtotal, 0.001)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	cart := &MockCart{Items: []models.CartItem{
		{ProductID: gocql.TimeUUID().String(), Price: 3.50, Quantity: 1},
	}}
	orders := &MockOrders{}
	svc, _, _ := newService(cart, orders)

	_, err := svc.CreateOrder(context.Background(), input())

	require.ErrorIs(t, err, ErrProductUnavailable)
	assert.Nil(t, orders.InsertedOrder)
}

func TestCreateOrder_InactiveProduct(t *testing.T) {
	cart := testCart()
	orders := &MockOrders{}
	svc, _, _ := newService(cart, orders)
	svc.Catalog.(*MockCatalog).Products[productB].IsActive = false

	_, err := svc.CreateOrder(context.Background(), input())

	require.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCreateOrder_GatedProductWithoutApproval(t *testing.T) {
	cart := &MockCart{Items: []models.CartItem{
		{ProductID: gatedID.String(), Price: 34.90, Quantity: 1},
	}}
	orders := &MockOrders{}
	svc, _, _ := newService(cart, orders)

	_, err := svc.CreateOrder(context.Background(), input())

	require.ErrorIs(t, err, ErrApprovalRequired)
	assert.Nil(t, orders.InsertedOrder)
}

func TestCreateOrder_GatedProductApproved(t *testing.T) {
	approvalID := gocql.TimeUUID()
	cart := &MockCart{Items: []models.CartItem{
		{ProductID: gatedID.String(), Price: 34.90, Quantity: 1, ApprovalID: approvalID.String()},
	}}
	orders := &MockOrders{}
	svc, _, _ := newService(cart, orders)
	svc.Approvals.(*MockApprovals).Approvals[approvalID] = &models.QuestionnaireApproval{
		ID: approvalID, UserID: "user-1", ProductID: gatedID, Status: models.ApprovalApproved,
	}

	res, err := svc.CreateOrder(context.Background(), input())

	require.NoError(t, err)
	assert.InDelta(t, 34.90, res.Order.Total, 0.001)
}

func TestCreateOrder_GatedProductPendingApproval(t *testing.T) {
	approvalID := gocql.TimeUUID()
	cart := &MockCart{Items: []models.CartItem{
		{ProductID: gatedID.String(), Price: 34.90, Quantity: 1, ApprovalID: approvalID.String()},
	}}
	svc, _, _ := newService(cart, &MockOrders{})
	svc.Approvals.(*MockApprovals).Approvals[approvalID] = &models.QuestionnaireApproval{
		ID: approvalID, UserID: "user-1", ProductID: gatedID, Status: models.ApprovalPending,
	}

	_, err := svc.CreateOrder(context.Background(), input())

	require.ErrorIs(t, err, ErrApprovalRequired)
}

func TestCreateOrder_GatedProductApprovalWrongProduct(t *testing.T) {
	approvalID := gocql.TimeUUID()
	cart := &MockCart{Items: []models.CartItem{
		{ProductID: gatedID.String(), Price: 34.90, Quantity: 1, ApprovalID: approvalID.String()},
	}}
	svc, _, _ := newService(cart, &MockOrders{})
	svc.Approvals.(*MockApprovals).Approvals[approvalID] = &models.QuestionnaireApproval{
		ID: approvalID, UserID: "user-1", ProductID: productA, Status: models.ApprovalApproved,
	}

	_, err := svc.CreateOrder(context.Background(), input())

	require.ErrorIs(t, err, ErrApprovalRequired)
}

func TestSubtotal(t *testing.T) {
	items := []models.OrderItem{
		{PriceAtTime: 5.99, Quantity: 2},
		{PriceAtTime: 12.99, Quantity: 1},
	}
	assert.InDelta(t, 24.97, Subtotal(items), 0.001)
	assert.InDelta(t, 0.0, Subtotal(nil), 0.001)
}
