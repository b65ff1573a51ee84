// Package mail envoie les emails transactionnels (confirmation de
// commande avec facture PDF en pièce jointe).
package mail

import (
	"bytes"
	"log"
	"os"
	"strconv"

	"graphics2prints_backend/internal/models"

	"github.com/wneessen/go-mail"
)

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewFromEnv() *Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@graphics2prints.com"
	}
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
	}
}

// SendOrderConfirmation envoie la confirmation HTML avec la facture PDF
// jointe. La facture est best-effort : si chromedp échoue, l'email part
// sans pièce jointe.
func (m *Mailer) SendOrderConfirmation(to string, order models.Order) error {
	msg := mail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Confirmation de votre commande Graphics2Prints n°" + order.OrderNumber)
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	pdf, err := GenerateInvoicePDF(order, to)
	if err != nil {
		log.Println("❌ Erreur génération facture PDF :", err)
	} else {
		msg.AttachReader("facture_"+order.OrderNumber+".pdf", bytes.NewReader(pdf))
	}

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	return client.DialAndSend(msg)
}
