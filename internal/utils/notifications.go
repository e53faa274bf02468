package utils

import (
	"fmt"
	"log"

	"pharmavia_back_end/internal/models"
)

// SendOrderStatusEmail notifie le client d'un changement de statut de commande
func SendOrderStatusEmail(order models.Order, userEmail string, newStatus string) error {
	subject := getStatusEmailSubject(newStatus)
	html := generateStatusEmailHTML(order, newStatus)

	if err := SendConfirmationEmail(userEmail, subject, html, nil); err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
		return err
	}

	log.Printf("📧 Email de statut envoyé: %s → %s", newStatus, userEmail)
	return nil
}

func getStatusEmailSubject(status string) string {
	switch status {
	case models.StatusPacked:
		return "📦 Votre commande est préparée - PharmaVia"
	case models.StatusOutForDelivery:
		return "🚚 Votre commande est en cours de livraison - PharmaVia"
	case models.StatusDelivered:
		return "🎉 Votre commande a été livrée - PharmaVia"
	case models.StatusCancelled:
		return "❌ Commande annulée - PharmaVia"
	default:
		return "📋 Mise à jour de votre commande - PharmaVia"
	}
}

func getStatusMessage(status string) string {
	switch status {
	case models.StatusProcessing:
		return "Votre commande est en cours de traitement par notre pharmacie."
	case models.StatusPacked:
		return "Votre commande a été préparée et vérifiée par notre pharmacien."
	case models.StatusOutForDelivery:
		return "Votre commande a quitté notre pharmacie et arrive bientôt."
	case models.StatusDelivered:
		return "Votre commande a été livrée. Bonne santé !"
	case models.StatusCancelled:
		return "Votre commande a été annulée. Contactez-nous si ce n'était pas prévu."
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}

func getStatusColor(status string) string {
	switch status {
	case models.StatusDelivered:
		return "#1b7a4a"
	case models.StatusCancelled:
		return "#c0392b"
	default:
		return "#2d6cdf"
	}
}

// SendConsultationRequestEmail accuse réception d'une demande de consultation
func SendConsultationRequestEmail(cons models.Consultation) error {
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 24px; border-radius: 10px;">
		<h2 style="color: #1b7a4a;">PharmaVia</h2>
		<p>Nous avons bien reçu votre demande de consultation : <strong>%s</strong></p>
		<p style="color: #555;">Un pharmacien vous recontactera sous 24h ouvrées%s.</p>
		<p style="margin-top: 30px; color: #555;">
			Prenez soin de vous,<br>
			<strong>L'équipe PharmaVia</strong>
		</p>
	</div>
</body>
</html>`, cons.Subject, preferredSlotLine(cons))

	if err := SendConfirmationEmail(cons.Email, "💬 Votre demande de consultation - PharmaVia", html, nil); err != nil {
		log.Printf("❌ Erreur envoi accusé consultation: %v", err)
		return err
	}
	log.Printf("📧 Accusé de consultation envoyé → %s", cons.Email)
	return nil
}

// SendConsultationAlertEmail prévient l'équipe officine d'une nouvelle demande
func SendConsultationAlertEmail(teamEmail string, cons models.Consultation) error {
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h3>Nouvelle demande de consultation</h3>
	<p><strong>Sujet :</strong> %s</p>
	<p><strong>De :</strong> %s</p>
	<p><strong>Créneau souhaité :</strong> %s</p>
	<p style="white-space: pre-line;">%s</p>
</body>
</html>`, cons.Subject, cons.Email, cons.PreferredSlot, cons.Message)

	return SendConfirmationEmail(teamEmail, "💬 Nouvelle consultation: "+cons.Subject, html, nil)
}

func preferredSlotLine(cons models.Consultation) string {
	if cons.PreferredSlot == "" {
		return ""
	}
	return fmt.Sprintf(" (créneau souhaité : %s)", cons.PreferredSlot)
}

// SendQuestionnaireDecisionEmail notifie le patient de la décision du pharmacien
func SendQuestionnaireDecisionEmail(userEmail, productName, status, reviewerNote string) error {
	var subject, message, color string
	switch status {
	case models.ApprovalApproved:
		subject = "✅ Questionnaire approuvé - PharmaVia"
		message = fmt.Sprintf("Votre questionnaire pour <strong>%s</strong> a été approuvé. Vous pouvez finaliser votre commande.", productName)
		color = "#1b7a4a"
	case models.ApprovalRejected:
		subject = "❌ Questionnaire refusé - PharmaVia"
		message = fmt.Sprintf("Votre questionnaire pour <strong>%s</strong> n'a pas pu être approuvé. Nous vous conseillons de consulter votre médecin.", productName)
		color = "#c0392b"
	default:
		subject = "📋 Questionnaire en cours d'examen - PharmaVia"
		message = fmt.Sprintf("Votre questionnaire pour <strong>%s</strong> est en cours d'examen.", productName)
		color = "#2d6cdf"
	}

	note := ""
	if reviewerNote != "" {
		note = fmt.Sprintf(`<p style="color: #555;"><strong>Note du pharmacien :</strong> %s</p>`, reviewerNote)
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 24px; border-radius: 10px;">
		<h2 style="color: %s;">PharmaVia</h2>
		<p>%s</p>
		%s
		<p style="margin-top: 30px; color: #555;">
			Prenez soin de vous,<br>
			<strong>L'équipe PharmaVia</strong>
		</p>
	</div>
</body>
</html>`, color, message, note)

	if err := SendConfirmationEmail(userEmail, subject, html, nil); err != nil {
		log.Printf("❌ Erreur envoi email questionnaire: %v", err)
		return err
	}
	log.Printf("📧 Décision questionnaire (%s) envoyée → %s", status, userEmail)
	return nil
}

func generateStatusEmailHTML(order models.Order, status string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Mise à jour de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 24px; border-radius: 10px;">
		<h2 style="color: #1b7a4a;">PharmaVia</h2>
		<div style="display: inline-block; padding: 10px 20px; background-color: %s; color: white; border-radius: 20px; font-weight: bold; text-transform: uppercase;">
			%s
		</div>
		<p style="margin-top: 20px;">%s</p>
		<p style="color: #555;">Commande n° %s — Total : %.2f€</p>
		<p style="margin-top: 30px; color: #555;">
			Prenez soin de vous,<br>
			<strong>L'équipe PharmaVia</strong>
		</p>
	</div>
</body>
</html>`, getStatusColor(status), status, getStatusMessage(status), order.ID, order.Total)
}
