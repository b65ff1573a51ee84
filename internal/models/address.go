package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Address struct {
	ID         gocql.UUID `json:"id"`
	CustomerID gocql.UUID `json:"customer_id"`
	Street     string     `json:"street"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	Country    string     `json:"country"`
	Phone      string     `json:"phone"`
	CreatedAt  time.Time  `json:"created_at"`
}
