package mail

import (
	"fmt"

	"graphics2prints_backend/internal/models"
)

func itemRowsHTML(items []models.OrderItem) string {
	rows := ""
	for _, item := range items {
		rows += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
			</tr>`, item.Name, item.Quantity)
	}
	return rows
}

// orderConfirmationHTML génère le corps de l'email de confirmation.
func orderConfirmationHTML(order models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Merci pour votre commande !</h2>
		<p>Bonjour,</p>
		<p>Votre paiement a bien été reçu. Votre numéro de commande est le <strong>%s</strong>.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Article</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p><strong>Total payé : %.2f</strong></p>
		<p>Vous trouverez votre facture en pièce jointe. Présentez le QR code
		qu'elle contient lors du retrait de votre commande.</p>
		<p style="color: #888; font-size: 12px;">Graphics2Prints — impression &amp; cadeaux personnalisés</p>
	</div>
</body>
</html>`, order.OrderNumber, itemRowsHTML(order.Items), order.TotalAmount)
}

// invoiceHTML génère la facture imprimée en PDF par chromedp.
func invoiceHTML(order models.Order, customerEmail, qrDataURL string) string {
	qrBlock := ""
	if qrDataURL != "" {
		qrBlock = fmt.Sprintf(`<img src="%s" alt="QR retrait" style="width: 160px; height: 160px;">`, qrDataURL)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Facture %s</title>
</head>
<body style="font-family: Arial, sans-serif; padding: 40px;">
	<h1>Graphics2Prints</h1>
	<h2>Facture — commande n°%s</h2>
	<p>Client : %s<br>Date : %s<br>Référence paiement : %s</p>

	<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
		<thead>
			<tr style="background-color: #f0f0f0;">
				<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Article</th>
				<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
			</tr>
		</thead>
		<tbody>%s</tbody>
	</table>

	<h3>Total : %.2f</h3>
	<p>Statut : %s</p>
	%s
</body>
</html>`, order.OrderNumber, order.OrderNumber, customerEmail,
		order.CreatedAt.Format("02/01/2006"), order.PaymentReference,
		itemRowsHTML(order.Items), order.TotalAmount, order.Status, qrBlock)
}
