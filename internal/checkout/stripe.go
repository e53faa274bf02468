package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripeVerifier interroge Stripe sur le statut réel d'un PaymentIntent.
// Quoi que prétende le client, seul "succeeded" autorise la suite.
type StripeVerifier struct{}

func (StripeVerifier) Verify(ctx context.Context, paymentIntentID string) error {
	if paymentIntentID == "" {
		return fmt.Errorf("%w: payment_intent_id manquant", ErrPaymentCheckFailed)
	}

	pi, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		log.Printf("❌ Erreur Stripe sur %s: %v", paymentIntentID, err)
		return fmt.Errorf("%w: %v", ErrPaymentCheckFailed, err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		// requires_action, processing, canceled... : échec dur, pas de retry ici
		return fmt.Errorf("%w: statut %s", ErrPaymentNotSucceeded, pi.Status)
	}

	return nil
}
