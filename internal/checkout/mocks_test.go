package checkout

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/models"
)

// MockPayments implements PaymentVerifier
type MockPayments struct {
	Err      error
	Verified []string
}

func (m *MockPayments) Verify(_ context.Context, paymentIntentID string) error {
	m.Verified = append(m.Verified, paymentIntentID)
	return m.Err
}

// MockCart implements CartStore
type MockCart struct {
	Items    []models.CartItem
	SnapErr  error
	ClearErr error
	Cleared  bool
}

func (m *MockCart) Snapshot(_ context.Context, _ string) ([]models.CartItem, error) {
	if m.SnapErr != nil {
		return nil, m.SnapErr
	}
	if len(m.Items) == 0 {
		return nil, ErrEmptyCart
	}
	return m.Items, nil
}

func (m *MockCart) Clear(_ context.Context, _ string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Cleared = true
	return nil
}

// MockCatalog implements ProductCatalog
type MockCatalog struct {
	Products map[gocql.UUID]*models.Product
}

func (m *MockCatalog) GetProduct(_ context.Context, productID gocql.UUID) (*models.Product, error) {
	p, ok := m.Products[productID]
	if !ok {
		return nil, gocql.ErrNotFound
	}
	return p, nil
}

// MockApprovals implements ApprovalStore
type MockApprovals struct {
	Approvals map[gocql.UUID]*models.QuestionnaireApproval
}

func (m *MockApprovals) GetApproval(_ context.Context, approvalID gocql.UUID) (*models.QuestionnaireApproval, error) {
	a, ok := m.Approvals[approvalID]
	if !ok {
		return nil, gocql.ErrNotFound
	}
	return a, nil
}

// MockOrders implements OrderStore and captures every write
type MockOrders struct {
	ExistingID     *gocql.UUID
	FindErr        error
	InsertOrderErr error
	InsertItemsErr error
	DeleteErr      error

	InsertedOrder *models.Order
	ItemsInserted bool
	DeletedOrder  *models.Order
}

func (m *MockOrders) FindByPaymentIntent(_ context.Context, _ string) (gocql.UUID, bool, error) {
	if m.FindErr != nil {
		return gocql.UUID{}, false, m.FindErr
	}
	if m.ExistingID != nil {
		return *m.ExistingID, true, nil
	}
	return gocql.UUID{}, false, nil
}

func (m *MockOrders) InsertOrder(_ context.Context, order *models.Order) error {
	if m.InsertOrderErr != nil {
		return m.InsertOrderErr
	}
	m.InsertedOrder = order
	return nil
}

func (m *MockOrders) InsertItems(_ context.Context, _ *models.Order) error {
	if m.InsertItemsErr != nil {
		return m.InsertItemsErr
	}
	m.ItemsInserted = true
	return nil
}

func (m *MockOrders) DeleteOrder(_ context.Context, order *models.Order) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedOrder = order
	return nil
}

// MockNotifier implements Notifier
type MockNotifier struct {
	Sent []string
}

func (m *MockNotifier) OrderConfirmation(_ models.Order, email string) {
	m.Sent = append(m.Sent, email)
}

var errBoom = errors.New("boom")
