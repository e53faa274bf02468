package checkout

import (
	"context"
	"log"

	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
)

// ScyllaOrderStore écrit dans le keyspace orders : table principale `orders`,
// lignes `order_items`, index dénormalisés `orders_by_user` et
// `orders_by_payment`. Scylla n'a pas de transaction multi-tables, d'où la
// compensation manuelle orchestrée par le Service.
type ScyllaOrderStore struct{}

func (ScyllaOrderStore) FindByPaymentIntent(ctx context.Context, paymentIntentID string) (gocql.UUID, bool, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return gocql.UUID{}, false, err
	}

	var orderID gocql.UUID
	err = session.Query("SELECT order_id FROM orders_by_payment WHERE payment_intent_id = ?", paymentIntentID).
		WithContext(ctx).Scan(&orderID)
	if err == gocql.ErrNotFound {
		return gocql.UUID{}, false, nil
	}
	if err != nil {
		return gocql.UUID{}, false, err
	}
	return orderID, true, nil
}

func (ScyllaOrderStore) InsertOrder(ctx context.Context, o *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	err = session.Query(`INSERT INTO orders (order_id, user_id, guest_email, payment_intent_id,
		subtotal, shipping_cost, total, status,
		shipping_name, shipping_street, shipping_city, shipping_postal_code, shipping_country, shipping_phone,
		billing_name, billing_street, billing_city, billing_postal_code, billing_country, billing_phone,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.GuestEmail, o.PaymentIntentID,
		o.Subtotal, o.ShippingCost, o.Total, o.Status,
		o.ShippingAddress.FullName, o.ShippingAddress.Street, o.ShippingAddress.City,
		o.ShippingAddress.PostalCode, o.ShippingAddress.Country, o.ShippingAddress.Phone,
		o.BillingAddress.FullName, o.BillingAddress.Street, o.BillingAddress.City,
		o.BillingAddress.PostalCode, o.BillingAddress.Country, o.BillingAddress.Phone,
		o.CreatedAt, o.UpdatedAt).WithContext(ctx).Exec()
	if err != nil {
		return err
	}

	// Index dénormalisés — best-effort, la table principale fait foi
	if err := session.Query("INSERT INTO orders_by_payment (payment_intent_id, order_id) VALUES (?, ?)",
		o.PaymentIntentID, o.ID).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation orders_by_payment: %v", err)
	}

	if err := session.Query(`INSERT INTO orders_by_user (owner, order_id, total, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		ownerKey(o), o.ID, o.Total, o.Status, o.CreatedAt).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation orders_by_user: %v", err)
	}

	return nil
}

func (ScyllaOrderStore) InsertItems(ctx context.Context, o *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	// Batch logged : toutes les lignes partagent la même partition (order_id)
	batch := session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, item := range o.Items {
		batch.Query(`INSERT INTO order_items (order_id, product_id, name, quantity, price_at_time, dosage, tablet_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			o.ID, item.ProductID, item.Name, item.Quantity, item.PriceAtTime, item.Dosage, item.TabletCount)
	}
	return session.ExecuteBatch(batch)
}

func (ScyllaOrderStore) DeleteOrder(ctx context.Context, o *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	if err := session.Query("DELETE FROM orders WHERE order_id = ?", o.ID).WithContext(ctx).Exec(); err != nil {
		return err
	}

	// Nettoyage des index et d'éventuelles lignes partiellement écrites
	if err := session.Query("DELETE FROM order_items WHERE order_id = ?", o.ID).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur nettoyage order_items pour %s: %v", o.ID, err)
	}
	if err := session.Query("DELETE FROM orders_by_payment WHERE payment_intent_id = ?", o.PaymentIntentID).
		WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur nettoyage orders_by_payment pour %s: %v", o.ID, err)
	}
	if err := session.Query("DELETE FROM orders_by_user WHERE owner = ? AND order_id = ?",
		ownerKey(o), o.ID).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur nettoyage orders_by_user pour %s: %v", o.ID, err)
	}

	return nil
}

// ownerKey : clé de partition de orders_by_user — user_id pour un client
// connecté, e-mail pour un invité
func ownerKey(o *models.Order) string {
	if o.UserID != "" {
		return o.UserID
	}
	return o.GuestEmail
}
