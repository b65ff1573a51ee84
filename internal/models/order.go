package models

import (
	"time"

	"github.com/gocql/gocql"
)

// OrderItem est une ligne de commande telle qu'elle voyage dans les
// metadata de paiement : juste un nom et une quantité.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Order est la seule entité avec un vrai cycle de vie : créée exactement
// une fois à la première vérification réussie d'une référence de paiement,
// jamais modifiée ni supprimée ensuite.
type Order struct {
	OrderNumber      string      `json:"order_number"`
	PaymentReference string      `json:"payment_reference"`
	CustomerID       gocql.UUID  `json:"customer_id"`
	TotalAmount      float64     `json:"total_amount"`
	Status           string      `json:"status"`
	Items            []OrderItem `json:"items"`
	CreatedAt        time.Time   `json:"created_at"`
}
