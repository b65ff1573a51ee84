package models

import "time"

// StoreSettings regroupe les infos boutique affichées au client
// (adresse de retrait, note de livraison, contact support).
type StoreSettings struct {
	PickupAddress string    `json:"pickup_address"`
	DeliveryNote  string    `json:"delivery_note"`
	SupportEmail  string    `json:"support_email"`
	SupportPhone  string    `json:"support_phone"`
	UpdatedAt     time.Time `json:"updated_at"`
}
