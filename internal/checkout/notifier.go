package checkout

import (
	"log"
	"sync"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
	"pharmavia_back_end/internal/utils"
)

// MailNotifier envoie l'e-mail de confirmation avec la facture PDF en pièce
// jointe quand elle est générable. Tout passe par RunBestEffort : aucun échec
// d'e-mail ne remonte au checkout.
type MailNotifier struct{}

func (MailNotifier) OrderConfirmation(order models.Order, email string) {
	utils.RunBestEffort("email confirmation commande", func() error {
		html := utils.GenerateOrderConfirmationHTML(order, email)

		pdf, err := utils.GenerateInvoicePDF(order)
		if err != nil {
			log.Printf("⚠️ Facture PDF non générée pour %s: %v", order.ID, err)
			pdf = nil
		}

		if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande PharmaVia", html, pdf); err != nil {
			return err
		}
		log.Println("📧 E-mail de confirmation envoyé à", email)
		return nil
	})
}

var (
	defaultService *Service
	defaultOnce    sync.Once
)

// Default construit le service de production branché sur Stripe, Redis et
// Scylla. Les handlers HTTP passent par ici.
func Default() *Service {
	defaultOnce.Do(func() {
		defaultService = &Service{
			Payments:  StripeVerifier{},
			Cart:      &RedisCartStore{RDB: database.RedisClient},
			Catalog:   ScyllaCatalog{},
			Approvals: ScyllaApprovals{},
			Orders:    ScyllaOrderStore{},
			Notify:    MailNotifier{},
		}
	})
	return defaultService
}
