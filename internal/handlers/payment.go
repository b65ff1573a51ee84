package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"graphics2prints_backend/internal/catalog"
	"graphics2prints_backend/internal/mail"
	"graphics2prints_backend/internal/models"
	"graphics2prints_backend/internal/orders"
	"graphics2prints_backend/internal/paystack"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

const cartItemsField = "cart_items"

type PaymentHandler struct {
	Gateway    *paystack.Client
	Reconciler *orders.Reconciler
	Catalog    *catalog.Store
	Redis      *redis.Client
	Mailer     *mail.Mailer
}

// Verify est appelé par la page de callback après checkout (et rejouable
// à volonté) : vérifie la transaction auprès de Paystack puis matérialise
// la commande, une seule fois par référence.
func (h *PaymentHandler) Verify(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		// Rejet immédiat, aucun appel externe
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Référence de paiement requise"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	tx, err := h.Gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		log.Printf("❌ Vérification Paystack impossible pour %s: %v", reference, err)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": "Vérification du paiement impossible, réessayez"})
		return
	}

	if tx.Status != "success" {
		// Paiement non capturé : échec terminal, le client doit repayer,
		// pas revérifier.
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Paiement non confirmé"})
		return
	}

	// kobo → unités majeures
	amount := float64(tx.Amount) / 100
	items := orders.DecodeCartItems(tx.Metadata.CustomField(cartItemsField))

	result, err := h.Reconciler.Reconcile(ctx, orders.ReconcileInput{
		Reference:   reference,
		Email:       tx.Customer.Email,
		TotalAmount: amount,
		Items:       items,
	})
	if errors.Is(err, orders.ErrCustomerNotFound) {
		log.Printf("❌ Paiement %s non attribuable: aucun client pour %s", reference, tx.Customer.Email)
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": "Client introuvable pour ce paiement"})
		return
	}
	if err != nil {
		// Erreur de persistance : retryable côté client, la vérification
		// est idempotente. Le détail reste dans les logs.
		log.Printf("❌ Enregistrement de la commande %s en échec: %v", reference, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Enregistrement de la commande impossible, réessayez"})
		return
	}

	if !result.AlreadyExisted {
		order := models.Order{
			OrderNumber:      result.OrderNumber,
			PaymentReference: reference,
			TotalAmount:      amount,
			Status:           "paid",
			Items:            items,
			CreatedAt:        time.Now(),
		}
		go h.afterOrderCreated(tx.Customer.Email, order)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "orderNumber": result.OrderNumber})
}

// afterOrderCreated tourne en goroutine après la première création :
// nettoyage du panier Redis puis email de confirmation. Tout est
// best-effort, rien ici ne remet la commande en cause.
func (h *PaymentHandler) afterOrderCreated(email string, order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if h.Redis != nil {
		if err := h.Redis.Del(ctx, "cart:"+email).Err(); err == nil {
			log.Printf("🧹 Panier supprimé pour %s", email)
		}
	}

	if h.Mailer != nil {
		if err := h.Mailer.SendOrderConfirmation(email, order); err != nil {
			log.Println("❌ Erreur envoi e-mail confirmation :", err)
		} else {
			log.Println("📧 E-mail de confirmation envoyé à", email)
		}
	}
}

// Initialize démarre un checkout : les prix sont relus depuis le
// catalogue (jamais pris du client), le panier part dans les metadata
// Paystack et un instantané est gardé dans Redis.
func (h *PaymentHandler) Initialize(c *gin.Context) {
	var req struct {
		Items       []models.CartItem `json:"items" binding:"required"`
		CallbackURL string            `json:"callback_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide ou panier vide"})
		return
	}

	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié ou e-mail manquant"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	var total float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))

	for i, item := range req.Items {
		productID, err := gocql.ParseUUID(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide: " + item.ProductID})
			return
		}
		product, err := h.Catalog.ByID(ctx, productID)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable: " + item.ProductID})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
			return
		}
		if !product.Available {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Produit indisponible: " + product.Name})
			return
		}
		if item.Quantity < product.MinOrder {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Quantité sous le minimum d'impression",
				"product":   product.Name,
				"min_order": product.MinOrder,
				"requested": item.Quantity,
			})
			return
		}

		req.Items[i].Name = product.Name
		req.Items[i].Price = product.Price
		total += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{Name: product.Name, Quantity: item.Quantity})
	}

	cartJSON, err := json.Marshal(orderItems)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sérialisation panier"})
		return
	}
	fieldValue, _ := json.Marshal(string(cartJSON))

	auth, err := h.Gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
		Email:       email,
		Amount:      int64(math.Round(total * 100)), // unités mineures
		CallbackURL: req.CallbackURL,
		Metadata: &paystack.Metadata{
			CustomFields: []paystack.CustomField{{
				DisplayName:  "Cart Items",
				VariableName: cartItemsField,
				Value:        json.RawMessage(fieldValue),
			}},
		},
	})
	if err != nil {
		log.Printf("❌ Erreur initialisation Paystack: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur création paiement"})
		return
	}

	// Instantané du panier pour la page de confirmation ; supprimé après
	// création de la commande.
	if h.Redis != nil {
		if snapshot, err := json.Marshal(req.Items); err == nil {
			h.Redis.Set(ctx, "cart:"+email, snapshot, 24*time.Hour)
		}
	}

	log.Printf("💳 Checkout créé: %s (%.2f) pour %s", auth.Reference, total, email)

	c.JSON(http.StatusOK, gin.H{
		"authorization_url": auth.AuthorizationURL,
		"access_code":       auth.AccessCode,
		"reference":         auth.Reference,
		"amount":            total,
		"items_count":       len(req.Items),
	})
}
