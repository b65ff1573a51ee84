package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"graphics2prints_backend/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaStore persiste les commandes dans le keyspace orders.
// payment_reference est la clé de partition de la table orders : l'unicité
// n'est pas une convention applicative, c'est le schéma qui l'impose, et
// l'insert passe par un LWT IF NOT EXISTS.
type ScyllaStore struct {
	session *gocql.Session
}

func NewScyllaStore(session *gocql.Session) *ScyllaStore {
	return &ScyllaStore{session: session}
}

func (s *ScyllaStore) InsertIfAbsent(ctx context.Context, o models.Order) (bool, string, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return false, "", fmt.Errorf("sérialisation lignes de commande: %w", err)
	}

	prev := map[string]interface{}{}
	applied, err := s.session.Query(`INSERT INTO orders (payment_reference, order_number, customer_id, total_amount, status, items, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) IF NOT EXISTS`,
		o.PaymentReference, o.OrderNumber, o.CustomerID, o.TotalAmount, o.Status, string(itemsJSON), o.CreatedAt).
		WithContext(ctx).
		MapScanCAS(prev)
	if err != nil {
		return false, "", err
	}

	if !applied {
		existing, _ := prev["order_number"].(string)
		return false, existing, nil
	}

	// Table dénormalisée pour les listes par client. Une erreur ici ne
	// remet pas la commande en cause, on log et on continue.
	if err := s.session.Query(`INSERT INTO orders_by_customer (customer_id, created_at, payment_reference, order_number, total_amount, status, items)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.CustomerID, o.CreatedAt, o.PaymentReference, o.OrderNumber, o.TotalAmount, o.Status, string(itemsJSON)).
		WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation orders_by_customer pour %s: %v", o.OrderNumber, err)
	}

	return true, "", nil
}

// ByCustomer liste les commandes d'un client, les plus récentes d'abord
// (ordre de clustering de orders_by_customer).
func (s *ScyllaStore) ByCustomer(ctx context.Context, customerID gocql.UUID) ([]models.Order, error) {
	iter := s.session.Query(`SELECT payment_reference, order_number, total_amount, status, items, created_at
		FROM orders_by_customer WHERE customer_id = ?`, customerID).
		WithContext(ctx).Iter()

	var out []models.Order
	var o models.Order
	var itemsJSON string

	for iter.Scan(&o.PaymentReference, &o.OrderNumber, &o.TotalAmount, &o.Status, &itemsJSON, &o.CreatedAt) {
		o.CustomerID = customerID
		o.Items = DecodeCartItems(itemsJSON)
		out = append(out, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

// ByReference recharge une commande complète, utilisée pour l'email de
// confirmation après création.
func (s *ScyllaStore) ByReference(ctx context.Context, reference string) (models.Order, error) {
	var o models.Order
	var itemsJSON string
	if err := s.session.Query(`SELECT payment_reference, order_number, customer_id, total_amount, status, items, created_at
		FROM orders WHERE payment_reference = ?`, reference).
		WithContext(ctx).
		Scan(&o.PaymentReference, &o.OrderNumber, &o.CustomerID, &o.TotalAmount, &o.Status, &itemsJSON, &o.CreatedAt); err != nil {
		return models.Order{}, err
	}
	o.Items = DecodeCartItems(itemsJSON)
	return o, nil
}
