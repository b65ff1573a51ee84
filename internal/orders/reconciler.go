package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"graphics2prints_backend/internal/models"

	"github.com/gocql/gocql"
)

// CustomerDirectory résout l'email payeur vers un identifiant client.
type CustomerDirectory interface {
	// IDByEmail renvoie ErrCustomerNotFound si aucun client ne correspond.
	IDByEmail(ctx context.Context, email string) (gocql.UUID, error)
}

// OrderStore persiste les commandes. InsertIfAbsent est une écriture
// conditionnelle : si une commande existe déjà pour la même
// payment_reference, rien n'est écrit et le numéro existant est renvoyé.
type OrderStore interface {
	InsertIfAbsent(ctx context.Context, o models.Order) (applied bool, existingNumber string, err error)
}

type ReconcileInput struct {
	Reference   string
	Email       string
	TotalAmount float64 // déjà converti en unités majeures
	Items       []models.OrderItem
}

type ReconcileResult struct {
	OrderNumber    string
	AlreadyExisted bool
}

// Reconciler transforme un paiement vérifié en exactement une commande
// persistée. Le code d'origine faisait un count puis un insert, avec une
// fenêtre de course entre les deux ; ici l'insert conditionnel de la base
// est l'unique arbitre : on insère d'abord, et en cas de conflit on rend
// le numéro de la commande déjà en place.
type Reconciler struct {
	Customers CustomerDirectory
	Orders    OrderStore
}

func NewReconciler(customers CustomerDirectory, store OrderStore) *Reconciler {
	return &Reconciler{Customers: customers, Orders: store}
}

func (r *Reconciler) Reconcile(ctx context.Context, in ReconcileInput) (ReconcileResult, error) {
	customerID, err := r.Customers.IDByEmail(ctx, in.Email)
	if err != nil {
		return ReconcileResult{}, err
	}

	order := models.Order{
		OrderNumber:      GenerateOrderNumber(),
		PaymentReference: in.Reference,
		CustomerID:       customerID,
		TotalAmount:      in.TotalAmount,
		Status:           "paid",
		Items:            in.Items,
		CreatedAt:        time.Now(),
	}

	applied, existing, err := r.Orders.InsertIfAbsent(ctx, order)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("insertion commande: %w", err)
	}
	if !applied {
		// Vérification rejouée (webhook relivré, page callback rafraîchie,
		// appel concurrent) : on rend le résultat précédent, pas une erreur.
		log.Printf("🔁 Commande déjà enregistrée pour la référence %s, numéro %s", in.Reference, existing)
		return ReconcileResult{OrderNumber: existing, AlreadyExisted: true}, nil
	}

	log.Printf("✅ Commande %s créée pour %s (%.2f)", order.OrderNumber, in.Email, in.TotalAmount)
	return ReconcileResult{OrderNumber: order.OrderNumber}, nil
}
