package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"pharmavia_back_end/internal/models"
)

// Frais de port : offerts (politique actuelle)
const ShippingCost = 0.0

// PaymentVerifier confirme qu'un paiement initié côté client a réellement
// abouti avant toute persistance
type PaymentVerifier interface {
	Verify(ctx context.Context, paymentIntentID string) error
}

// CartStore lit et vide le panier de l'identité courante
type CartStore interface {
	Snapshot(ctx context.Context, cartKey string) ([]models.CartItem, error)
	Clear(ctx context.Context, cartKey string) error
}

// ProductCatalog résout un produit vivant (existence, gating ordonnance)
type ProductCatalog interface {
	GetProduct(ctx context.Context, productID gocql.UUID) (*models.Product, error)
}

// ApprovalStore résout une approbation de questionnaire médical
type ApprovalStore interface {
	GetApproval(ctx context.Context, approvalID gocql.UUID) (*models.QuestionnaireApproval, error)
}

// OrderStore persiste la commande puis ses lignes ; DeleteOrder est l'unique
// action compensatoire autorisée
type OrderStore interface {
	FindByPaymentIntent(ctx context.Context, paymentIntentID string) (gocql.UUID, bool, error)
	InsertOrder(ctx context.Context, order *models.Order) error
	InsertItems(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, order *models.Order) error
}

// Notifier envoie la confirmation de commande. Best-effort : l'implémentation
// ne doit jamais faire échouer le checkout.
type Notifier interface {
	OrderConfirmation(order models.Order, email string)
}

// Service orchestre la création de commande. Les dépendances sont injectées
// (pas de globals ici) pour pouvoir les remplacer en test.
type Service struct {
	Payments  PaymentVerifier
	Cart      CartStore
	Catalog   ProductCatalog
	Approvals ApprovalStore
	Orders    OrderStore
	Notify    Notifier // optionnel
}

type CreateOrderInput struct {
	PaymentIntentID string
	UserID          string // vide pour un invité
	GuestEmail      string // requis si UserID vide
	Email           string // destinataire de la confirmation
	CartKey         string
	ShippingAddress models.Address
	BillingAddress  models.Address
}

type CreateOrderResult struct {
	Order *models.Order
	// AlreadyExisted : le PaymentIntent avait déjà produit une commande, on la
	// renvoie au lieu d'en créer un doublon
	AlreadyExisted bool
}

// CreateOrder exécute le workflow complet, strictement séquentiel :
// vérification paiement → snapshot panier → insertion commande puis lignes
// (suppression compensatoire de la commande si les lignes échouent) → vidage
// du panier (soft-fail) → e-mail de confirmation (best-effort).
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	// 1. Le paiement doit être en statut "succeeded", sinon on s'arrête là
	if err := s.Payments.Verify(ctx, in.PaymentIntentID); err != nil {
		return nil, err
	}

	// 2. Un PaymentIntent déjà consommé renvoie la commande existante
	existingID, found, err := s.Orders.FindByPaymentIntent(ctx, in.PaymentIntentID)
	if err != nil {
		// Dédoublonnage dégradé : on poursuit le checkout, quitte à risquer un
		// doublon, plutôt que de bloquer un client qui a déjà payé
		log.Printf("⚠️ Vérification d'idempotence indisponible pour %s: %v", in.PaymentIntentID, err)
	}
	if found {
		log.Printf("🔁 Commande déjà enregistrée pour %s → %s", in.PaymentIntentID, existingID)
		return &CreateOrderResult{
			Order:          &models.Order{ID: existingID, PaymentIntentID: in.PaymentIntentID},
			AlreadyExisted: true,
		}, nil
	}

	// 3. Snapshot du panier — hors transaction, la course entre deux checkouts
	// concurrents du même client est une faiblesse assumée
	items, err := s.Cart.Snapshot(ctx, in.CartKey)
	if err != nil {
		return nil, err
	}

	orderItems, err := s.validateItems(ctx, in.UserID, items)
	if err != nil {
		return nil, err
	}

	// 4. Totaux depuis les prix capturés à l'ajout au panier, pas les prix vivants
	subtotal := Subtotal(orderItems)
	now := time.Now()

	order := &models.Order{
		ID:              gocql.TimeUUID(),
		UserID:          in.UserID,
		GuestEmail:      in.GuestEmail,
		PaymentIntentID: in.PaymentIntentID,
		Subtotal:        subtotal,
		ShippingCost:    ShippingCost,
		Total:           subtotal + ShippingCost,
		Status:          models.StatusProcessing,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		Items:           orderItems,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	// 5. Parent d'abord : si l'insert de la commande échoue, rien n'a été créé
	if err := s.Orders.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistOrder, err)
	}

	// 6. Puis les lignes ; en cas d'échec on supprime la commande orpheline
	if err := s.Orders.InsertItems(ctx, order); err != nil {
		s.compensateOrder(ctx, order)
		return nil, fmt.Errorf("%w: lignes de commande: %v", ErrPersistOrder, err)
	}

	// 7. La commande est actée. Un panier non vidé est une incohérence
	// cosmétique, pas une raison d'échouer.
	if err := s.Cart.Clear(ctx, in.CartKey); err != nil {
		log.Printf("⚠️ Panier %s non vidé après commande %s: %v", in.CartKey, order.ID, err)
	}

	if s.Notify != nil && in.Email != "" {
		s.Notify.OrderConfirmation(*order, in.Email)
	}

	log.Printf("✅ Commande %s créée (%.2f€, %d lignes) pour %s", order.ID, order.Total, len(order.Items), in.Email)
	return &CreateOrderResult{Order: order}, nil
}

// validateItems joint chaque ligne du panier à son produit vivant : existence,
// produit actif, et questionnaire approuvé pour les produits sur ordonnance.
// Le prix conservé reste celui capturé à l'ajout au panier.
func (s *Service) validateItems(ctx context.Context, userID string, items []models.CartItem) ([]models.OrderItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: id invalide %q", ErrProductUnavailable, item.ProductID)
		}

		product, err := s.Catalog.GetProduct(ctx, gocql.UUID(pid))
		if err != nil || product == nil {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, item.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
		}

		if product.RequiresPrescription {
			if err := s.checkApproval(ctx, userID, product.ID, item.ApprovalID); err != nil {
				return nil, err
			}
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			Name:        product.Name,
			Quantity:    item.Quantity,
			PriceAtTime: item.Price,
			Dosage:      item.Dosage,
			TabletCount: item.TabletCount,
		})
	}

	return orderItems, nil
}

// checkApproval exige une approbation "approved", détenue par l'acheteur et
// portant sur le même produit
func (s *Service) checkApproval(ctx context.Context, userID string, productID gocql.UUID, approvalID string) error {
	if approvalID == "" {
		return fmt.Errorf("%w: aucune approbation fournie", ErrApprovalRequired)
	}

	aid, err := uuid.Parse(approvalID)
	if err != nil {
		return fmt.Errorf("%w: id approbation invalide", ErrApprovalRequired)
	}

	approval, err := s.Approvals.GetApproval(ctx, gocql.UUID(aid))
	if err != nil || approval == nil {
		return fmt.Errorf("%w: approbation introuvable", ErrApprovalRequired)
	}

	if approval.UserID != userID || approval.ProductID != productID || approval.Status != models.ApprovalApproved {
		return fmt.Errorf("%w: approbation non valable pour ce produit", ErrApprovalRequired)
	}

	return nil
}

// compensateOrder : suppression compensatoire de la commande parente après un
// échec d'insertion des lignes. Pas de transaction côté Scylla, on rejoue donc
// l'ordre inverse à la main.
func (s *Service) compensateOrder(ctx context.Context, order *models.Order) {
	if err := s.Orders.DeleteOrder(ctx, order); err != nil {
		// Commande orpheline : visible dans l'audit, à purger à la main
		log.Printf("❌ Suppression compensatoire échouée pour %s: %v", order.ID, err)
		return
	}
	log.Printf("🧹 Commande %s supprimée après échec des lignes", order.ID)
}

// Subtotal : Σ prix capturé × quantité
func Subtotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.PriceAtTime * float64(item.Quantity)
	}
	return total
}
