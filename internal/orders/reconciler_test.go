package orders

import (
	"context"
	"sync"
	"testing"

	"graphics2prints_backend/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory résout les emails depuis une map en mémoire.
type fakeDirectory struct {
	byEmail map[string]gocql.UUID
}

func (d *fakeDirectory) IDByEmail(_ context.Context, email string) (gocql.UUID, error) {
	id, ok := d.byEmail[email]
	if !ok {
		return gocql.UUID{}, ErrCustomerNotFound
	}
	return id, nil
}

// fakeOrderStore reproduit la sémantique du LWT IF NOT EXISTS : premier
// insert gagnant, les suivants rendent la ligne déjà en place.
type fakeOrderStore struct {
	mu     sync.Mutex
	byRef  map[string]models.Order
	failed bool
}

func (s *fakeOrderStore) InsertIfAbsent(_ context.Context, o models.Order) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed {
		return false, "", assert.AnError
	}
	if existing, ok := s.byRef[o.PaymentReference]; ok {
		return false, existing.OrderNumber, nil
	}
	if s.byRef == nil {
		s.byRef = map[string]models.Order{}
	}
	s.byRef[o.PaymentReference] = o
	return true, "", nil
}

func newTestReconciler(store *fakeOrderStore) (*Reconciler, gocql.UUID) {
	customerID := gocql.TimeUUID()
	dir := &fakeDirectory{byEmail: map[string]gocql.UUID{"a@b.com": customerID}}
	return NewReconciler(dir, store), customerID
}

func TestReconcileCreatesOrderOnce(t *testing.T) {
	store := &fakeOrderStore{}
	r, customerID := newTestReconciler(store)

	in := ReconcileInput{
		Reference:   "ref-abc123",
		Email:       "a@b.com",
		TotalAmount: 5000,
		Items:       []models.OrderItem{{Name: "Flyers", Quantity: 2}},
	}

	first, err := r.Reconcile(context.Background(), in)
	require.NoError(t, err)
	require.NotEmpty(t, first.OrderNumber)
	assert.False(t, first.AlreadyExisted)

	second, err := r.Reconcile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.OrderNumber, second.OrderNumber)
	assert.True(t, second.AlreadyExisted)

	// Exactement une ligne, avec les bons champs
	require.Len(t, store.byRef, 1)
	saved := store.byRef["ref-abc123"]
	assert.Equal(t, "paid", saved.Status)
	assert.Equal(t, customerID, saved.CustomerID)
	assert.InDelta(t, 5000, saved.TotalAmount, 0.001)
	assert.Equal(t, in.Items, saved.Items)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestReconcileUnknownCustomer(t *testing.T) {
	store := &fakeOrderStore{}
	r, _ := newTestReconciler(store)

	_, err := r.Reconcile(context.Background(), ReconcileInput{
		Reference: "ref-xyz",
		Email:     "inconnu@b.com",
	})

	require.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Empty(t, store.byRef, "aucune commande ne doit être écrite")
}

func TestReconcileConflictReturnsExistingNumber(t *testing.T) {
	// Ligne déjà en place (appel concurrent passé avant nous) : l'insert
	// conditionnel échoue et le numéro existant est rendu tel quel.
	store := &fakeOrderStore{byRef: map[string]models.Order{
		"ref-abc123": {OrderNumber: "17000000000001234", PaymentReference: "ref-abc123"},
	}}
	r, _ := newTestReconciler(store)

	res, err := r.Reconcile(context.Background(), ReconcileInput{
		Reference:   "ref-abc123",
		Email:       "a@b.com",
		TotalAmount: 1500,
	})

	require.NoError(t, err)
	assert.True(t, res.AlreadyExisted)
	assert.Equal(t, "17000000000001234", res.OrderNumber)
	require.Len(t, store.byRef, 1)
}

func TestReconcilePersistenceFailure(t *testing.T) {
	store := &fakeOrderStore{failed: true}
	r, _ := newTestReconciler(store)

	_, err := r.Reconcile(context.Background(), ReconcileInput{
		Reference: "ref-abc123",
		Email:     "a@b.com",
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCustomerNotFound)
}
