// Package paystack est le client de la passerelle de paiement : il ne
// connaît que l'API HTTP Paystack, aucune logique de commande n'habite ici.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.paystack.co"

type Client struct {
	Secret     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(secret string) *Client {
	return &Client{
		Secret:  secret,
		BaseURL: defaultBaseURL,
		// Borne l'appel sortant : en cas de timeout le flux échoue
		// sans qu'aucune commande partielle ne soit écrite.
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// VerifyTransaction interroge GET /transaction/verify/{reference}.
// Une réponse status=false de Paystack est une erreur (référence
// inconnue, clé invalide…) ; le statut métier du paiement lui-même est
// dans Transaction.Status.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*Transaction, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.BaseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Secret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("appel Paystack verify: %w", err)
	}
	defer resp.Body.Close()

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("décodage réponse Paystack: %w", err)
	}
	if !out.Status {
		log.Printf("❌ Paystack a refusé la vérification de %s: %s", reference, out.Message)
		return nil, fmt.Errorf("paystack: %s", out.Message)
	}
	return &out.Data, nil
}

// InitializeTransaction crée une transaction côté Paystack et renvoie
// l'URL d'autorisation vers laquelle rediriger le client.
func (c *Client) InitializeTransaction(ctx context.Context, in InitializeRequest) (*Authorization, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	url := c.BaseURL + "/transaction/initialize"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("appel Paystack initialize: %w", err)
	}
	defer resp.Body.Close()

	var out initializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("décodage réponse Paystack: %w", err)
	}
	if !out.Status {
		log.Printf("❌ Paystack a refusé l'initialisation: %s", out.Message)
		return nil, fmt.Errorf("paystack: %s", out.Message)
	}

	log.Printf("💳 Transaction Paystack initialisée: %s", out.Data.Reference)
	return &out.Data, nil
}
