package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"`
	MinOrder    int        `json:"min_order"` // quantité minimale d'impression
	ImageURL    string     `json:"image_url"`
	Available   bool       `json:"available"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CartItem est une ligne de panier côté checkout. Le prix est toujours
// relu depuis le catalogue, jamais pris tel quel du client.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
