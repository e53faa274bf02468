package checkout

import "errors"

var (
	// ErrPaymentCheckFailed : Stripe injoignable ou refus de la requête — on ne
	// crée rien tant que le paiement n'est pas vérifié
	ErrPaymentCheckFailed = errors.New("vérification du paiement impossible")

	// ErrPaymentNotSucceeded : le PaymentIntent existe mais n'est pas en statut
	// "succeeded" (requires_action, processing, canceled, ...)
	ErrPaymentNotSucceeded = errors.New("paiement non confirmé")

	// ErrEmptyCart : panier vide au moment du snapshot, une commande sans ligne
	// est invalide
	ErrEmptyCart = errors.New("panier vide")

	// ErrProductUnavailable : un article du panier référence un produit inconnu
	// ou désactivé
	ErrProductUnavailable = errors.New("produit indisponible")

	// ErrApprovalRequired : produit sur ordonnance sans questionnaire médical
	// approuvé correspondant
	ErrApprovalRequired = errors.New("questionnaire médical approuvé requis")

	// ErrPersistOrder : échec d'écriture de la commande ou de ses lignes
	ErrPersistOrder = errors.New("échec enregistrement commande")
)
