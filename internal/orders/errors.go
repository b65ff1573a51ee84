package orders

import "errors"

var (
	// ErrCustomerNotFound : un paiement ne peut pas être attribué à un
	// client inconnu, la création de commande est abandonnée.
	ErrCustomerNotFound = errors.New("client introuvable pour cet email")
)
