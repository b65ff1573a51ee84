package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Customer struct {
	ID        gocql.UUID `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Password  string     `json:"-"` // hash bcrypt, jamais exposé
	Role      string     `json:"role"`
	Provider  string     `json:"provider"` // "local" ou "google"
	CreatedAt time.Time  `json:"created_at"`
}
