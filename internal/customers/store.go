// Package customers est l'annuaire clients : résolution par email
// (attribution des paiements) et comptes locaux/OAuth.
package customers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"graphics2prints_backend/internal/models"
	"graphics2prints_backend/internal/orders"

	"github.com/gocql/gocql"
)

type Store struct {
	session *gocql.Session
}

func NewStore(session *gocql.Session) *Store {
	return &Store{session: session}
}

// IDByEmail résout l'email payeur vers un identifiant client via la table
// customers_by_email. Implémente orders.CustomerDirectory : renvoie
// orders.ErrCustomerNotFound quand aucun compte ne correspond.
func (s *Store) IDByEmail(ctx context.Context, email string) (gocql.UUID, error) {
	var id gocql.UUID
	err := s.session.Query(`SELECT customer_id FROM customers_by_email WHERE email = ?`, email).
		WithContext(ctx).Scan(&id)
	if errors.Is(err, gocql.ErrNotFound) {
		return gocql.UUID{}, orders.ErrCustomerNotFound
	}
	if err != nil {
		return gocql.UUID{}, fmt.Errorf("lookup client par email: %w", err)
	}
	return id, nil
}

// ByEmail recharge le compte complet (login : il faut le hash du mot de passe).
func (s *Store) ByEmail(ctx context.Context, email string) (models.Customer, error) {
	id, err := s.IDByEmail(ctx, email)
	if err != nil {
		return models.Customer{}, err
	}
	return s.ByID(ctx, id)
}

func (s *Store) ByID(ctx context.Context, id gocql.UUID) (models.Customer, error) {
	var c models.Customer
	c.ID = id
	err := s.session.Query(`SELECT email, name, password, role, provider, created_at FROM customers WHERE customer_id = ?`, id).
		WithContext(ctx).
		Scan(&c.Email, &c.Name, &c.Password, &c.Role, &c.Provider, &c.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return models.Customer{}, orders.ErrCustomerNotFound
	}
	if err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

// Create insère le compte et son entrée d'annuaire customers_by_email.
// L'entrée annuaire passe par un LWT pour qu'un email ne pointe jamais
// vers deux comptes.
func (s *Store) Create(ctx context.Context, c models.Customer) (models.Customer, error) {
	if c.ID == (gocql.UUID{}) {
		c.ID = gocql.TimeUUID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	prev := map[string]interface{}{}
	applied, err := s.session.Query(`INSERT INTO customers_by_email (email, customer_id) VALUES (?, ?) IF NOT EXISTS`,
		c.Email, c.ID).WithContext(ctx).MapScanCAS(prev)
	if err != nil {
		return models.Customer{}, fmt.Errorf("insertion annuaire email: %w", err)
	}
	if !applied {
		return models.Customer{}, ErrEmailTaken
	}

	if err := s.session.Query(`INSERT INTO customers (customer_id, email, name, password, role, provider, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Email, c.Name, c.Password, c.Role, c.Provider, c.CreatedAt).
		WithContext(ctx).Exec(); err != nil {
		return models.Customer{}, fmt.Errorf("insertion client: %w", err)
	}

	return c, nil
}

var ErrEmailTaken = errors.New("un compte avec cet email existe déjà")
