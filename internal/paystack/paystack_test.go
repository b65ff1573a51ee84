package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient("sk_test_secret")
	c.BaseURL = srv.URL
	return c, srv
}

func TestVerifyTransactionSuccess(t *testing.T) {
	var gotPath, gotAuth string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"reference": "ref-abc123",
				"amount": 500000,
				"currency": "NGN",
				"customer": {"email": "a@b.com"},
				"metadata": {"custom_fields": [
					{"display_name": "Cart Items", "variable_name": "cart_items",
					 "value": "[{\"name\":\"Flyers\",\"quantity\":2}]"}
				]}
			}
		}`)
	})
	defer srv.Close()

	tx, err := c.VerifyTransaction(context.Background(), "ref-abc123")
	require.NoError(t, err)

	assert.Equal(t, "/transaction/verify/ref-abc123", gotPath)
	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	assert.Equal(t, "success", tx.Status)
	assert.Equal(t, int64(500000), tx.Amount)
	assert.Equal(t, "a@b.com", tx.Customer.Email)
	assert.Equal(t, `[{"name":"Flyers","quantity":2}]`, tx.Metadata.CustomField("cart_items"))
}

func TestVerifyTransactionRejected(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status": false, "message": "Transaction reference not found"}`)
	})
	defer srv.Close()

	_, err := c.VerifyTransaction(context.Background(), "ref-inconnue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transaction reference not found")
}

func TestInitializeTransaction(t *testing.T) {
	var gotBody InitializeRequest
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"status": true, "message": "Authorization URL created",
			"data": {"authorization_url": "https://checkout.example/abc",
			         "access_code": "abc", "reference": "ref-nouvelle"}}`)
	})
	defer srv.Close()

	auth, err := c.InitializeTransaction(context.Background(), InitializeRequest{
		Email:  "a@b.com",
		Amount: 500000,
	})
	require.NoError(t, err)

	assert.Equal(t, "ref-nouvelle", auth.Reference)
	assert.Equal(t, "https://checkout.example/abc", auth.AuthorizationURL)
	assert.Equal(t, "a@b.com", gotBody.Email)
	assert.Equal(t, int64(500000), gotBody.Amount)
}

func TestMetadataCustomField(t *testing.T) {
	m := Metadata{CustomFields: []CustomField{
		{VariableName: "cart_items", Value: json.RawMessage(`"[{\"name\":\"Mugs\"}]"`)},
		{VariableName: "note", Value: json.RawMessage(`{"libre": true}`)},
	}}

	// Valeur chaîne : déquotée
	assert.Equal(t, `[{"name":"Mugs"}]`, m.CustomField("cart_items"))
	// Valeur non-chaîne : JSON brut
	assert.Equal(t, `{"libre": true}`, m.CustomField("note"))
	// Champ absent
	assert.Empty(t, m.CustomField("absent"))
}
