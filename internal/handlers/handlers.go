package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"graphics2prints_backend/internal/catalog"
	"graphics2prints_backend/internal/customers"
	"graphics2prints_backend/internal/database"
	"graphics2prints_backend/internal/mail"
	"graphics2prints_backend/internal/media"
	"graphics2prints_backend/internal/orders"
	"graphics2prints_backend/internal/paystack"

	"github.com/redis/go-redis/v9"
)

// Set regroupe tous les handlers du service, câblés sur le handle de
// connexions construit au démarrage.
type Set struct {
	Payment   *PaymentHandler
	Products  *ProductHandler
	Auth      *AuthHandler
	Addresses *AddressHandler
	Images    *ImageHandler
	Orders    *OrderHandler
	Settings  *SettingsHandler
	Redis     *redis.Client
}

func NewSet(db *database.Databases, gateway *paystack.Client, mailer *mail.Mailer) (*Set, error) {
	usersSession, err := db.UsersSession()
	if err != nil {
		return nil, fmt.Errorf("session users: %w", err)
	}
	catalogSession, err := db.CatalogSession()
	if err != nil {
		return nil, fmt.Errorf("session catalog: %w", err)
	}
	ordersSession, err := db.OrdersSession()
	if err != nil {
		return nil, fmt.Errorf("session orders: %w", err)
	}

	customerStore := customers.NewStore(usersSession)
	catalogStore := catalog.NewStore(catalogSession, db.Redis, db.Elastic)
	orderStore := orders.NewScyllaStore(ordersSession)
	mediaStore := media.NewStore(db.MinIO, os.Getenv("MINIO_BUCKET"))
	if db.MinIO != nil {
		if err := mediaStore.EnsureBucket(context.Background()); err != nil {
			log.Printf("⚠️ Bucket MinIO indisponible, upload d'images en échec possible: %v", err)
		}
	}

	return &Set{
		Payment: &PaymentHandler{
			Gateway:    gateway,
			Reconciler: orders.NewReconciler(customerStore, orderStore),
			Catalog:    catalogStore,
			Redis:      db.Redis,
			Mailer:     mailer,
		},
		Products:  &ProductHandler{Catalog: catalogStore},
		Auth:      &AuthHandler{Customers: customerStore},
		Addresses: &AddressHandler{Session: usersSession},
		Images:    &ImageHandler{Media: mediaStore},
		Orders:    &OrderHandler{Store: orderStore},
		Settings:  &SettingsHandler{Session: catalogSession, Redis: db.Redis},
		Redis:     db.Redis,
	}, nil
}
