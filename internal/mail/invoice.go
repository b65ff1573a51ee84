package mail

import (
	"context"
	"encoding/base64"
	"time"

	"graphics2prints_backend/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GeneratePickupQR encode le numéro de commande en QR (présenté au
// comptoir lors du retrait), prêt à mettre dans un <img src="...">.
func GeneratePickupQR(orderNumber string) (string, error) {
	png, err := qrcode.Encode(orderNumber, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoicePDF imprime la facture HTML en PDF via Chrome headless.
// Pas de front à charger : le HTML est rendu ici et passé en data URL.
func GenerateInvoicePDF(order models.Order, customerEmail string) ([]byte, error) {
	qr, err := GeneratePickupQR(order.OrderNumber)
	if err != nil {
		qr = "" // facture sans QR plutôt que pas de facture
	}

	html := invoiceHTML(order, customerEmail, qr)
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
