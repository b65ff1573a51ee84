package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"graphics2prints_backend/internal/models"
	"graphics2prints_backend/internal/orders"
	"graphics2prints_backend/internal/paystack"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	byEmail map[string]gocql.UUID
}

func (d *stubDirectory) IDByEmail(_ context.Context, email string) (gocql.UUID, error) {
	id, ok := d.byEmail[email]
	if !ok {
		return gocql.UUID{}, orders.ErrCustomerNotFound
	}
	return id, nil
}

type stubOrderStore struct {
	mu    sync.Mutex
	byRef map[string]models.Order
}

func (s *stubOrderStore) InsertIfAbsent(_ context.Context, o models.Order) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byRef[o.PaymentReference]; ok {
		return false, existing.OrderNumber, nil
	}
	if s.byRef == nil {
		s.byRef = map[string]models.Order{}
	}
	s.byRef[o.PaymentReference] = o
	return true, "", nil
}

// gatewayFixture sert les réponses de vérification par référence et compte
// les appels reçus.
type gatewayFixture struct {
	responses map[string]string
	calls     atomic.Int64
}

func (g *gatewayFixture) handler(w http.ResponseWriter, r *http.Request) {
	g.calls.Add(1)
	ref := r.URL.Path[len("/transaction/verify/"):]
	body, ok := g.responses[ref]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status": false, "message": "Transaction reference not found"}`)
		return
	}
	fmt.Fprint(w, body)
}

func successBody(reference string, amount int64, email, cartField string) string {
	return fmt.Sprintf(`{"status": true, "message": "Verification successful", "data": {
		"status": "success", "reference": %q, "amount": %d, "currency": "NGN",
		"customer": {"email": %q},
		"metadata": {"custom_fields": [
			{"display_name": "Cart Items", "variable_name": "cart_items", "value": %q}
		]}
	}}`, reference, amount, email, cartField)
}

func newVerifyFixture(t *testing.T, gw *gatewayFixture) (*gin.Engine, *stubOrderStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(http.HandlerFunc(gw.handler))
	t.Cleanup(srv.Close)

	client := paystack.NewClient("sk_test_secret")
	client.BaseURL = srv.URL

	store := &stubOrderStore{}
	dir := &stubDirectory{byEmail: map[string]gocql.UUID{"a@b.com": gocql.TimeUUID()}}

	h := &PaymentHandler{
		Gateway:    client,
		Reconciler: orders.NewReconciler(dir, store),
	}

	r := gin.New()
	r.GET("/api/payment/verify", h.Verify)
	return r, store
}

func doVerify(r *gin.Engine, reference string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	url := "/api/payment/verify"
	if reference != "" {
		url += "?reference=" + reference
	}
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyCreatesOrder(t *testing.T) {
	gw := &gatewayFixture{responses: map[string]string{
		"ref-abc123": successBody("ref-abc123", 500000, "a@b.com",
			`[{"name":"Flyers","quantity":2}]`),
	}}
	r, store := newVerifyFixture(t, gw)

	w := doVerify(r, "ref-abc123")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.Contains(t, w.Body.String(), `"orderNumber"`)

	require.Len(t, store.byRef, 1)
	saved := store.byRef["ref-abc123"]
	assert.InDelta(t, 5000, saved.TotalAmount, 0.001) // 500000 kobo
	assert.Equal(t, "paid", saved.Status)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, models.OrderItem{Name: "Flyers", Quantity: 2}, saved.Items[0])
}

func TestVerifyIsIdempotent(t *testing.T) {
	gw := &gatewayFixture{responses: map[string]string{
		"ref-abc123": successBody("ref-abc123", 500000, "a@b.com",
			`[{"name":"Flyers","quantity":2}]`),
	}}
	r, store := newVerifyFixture(t, gw)

	first := doVerify(r, "ref-abc123")
	second := doVerify(r, "ref-abc123")

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	// Même réponse, une seule ligne en base
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Len(t, store.byRef, 1)
}

func TestVerifyDoubleEncodedCart(t *testing.T) {
	gw := &gatewayFixture{responses: map[string]string{
		"ref-abc123": successBody("ref-abc123", 150000, "a@b.com",
			`["{\"name\":\"Mugs\",\"quantity\":12}"]`),
	}}
	r, store := newVerifyFixture(t, gw)

	w := doVerify(r, "ref-abc123")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := store.byRef["ref-abc123"]
	assert.InDelta(t, 1500, saved.TotalAmount, 0.001)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, models.OrderItem{Name: "Mugs", Quantity: 12}, saved.Items[0])
}

func TestVerifyMissingReference(t *testing.T) {
	gw := &gatewayFixture{}
	r, store := newVerifyFixture(t, gw)

	w := doVerify(r, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
	assert.Zero(t, gw.calls.Load(), "aucun appel passerelle sans référence")
	assert.Empty(t, store.byRef)
}

func TestVerifyPaymentNotSuccessful(t *testing.T) {
	gw := &gatewayFixture{responses: map[string]string{
		"ref-abandonnee": `{"status": true, "message": "Verification successful",
			"data": {"status": "abandoned", "reference": "ref-abandonnee", "amount": 500000,
			         "customer": {"email": "a@b.com"}}}`,
	}}
	r, store := newVerifyFixture(t, gw)

	w := doVerify(r, "ref-abandonnee")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.byRef)
}

func TestVerifyGatewayUnreachable(t *testing.T) {
	gw := &gatewayFixture{} // référence inconnue → erreur du client Paystack
	r, store := newVerifyFixture(t, gw)

	w := doVerify(r, "ref-inconnue")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, store.byRef)
}

func TestVerifyUnknownCustomer(t *testing.T) {
	gw := &gatewayFixture{responses: map[string]string{
		"ref-abc123": successBody("ref-abc123", 500000, "orphelin@b.com",
			`[{"name":"Flyers","quantity":2}]`),
	}}
	r, store := newVerifyFixture(t, gw)

	w := doVerify(r, "ref-abc123")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, store.byRef, "aucune commande pour un payeur inconnu")
}
