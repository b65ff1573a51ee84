package handlers

import (
	"net/http"
	"time"

	"graphics2prints_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// AddressHandler gère les adresses de livraison du client connecté.
// La table addresses_by_customer est clusterisée par customer_id : un
// client ne peut toucher que ses propres lignes par construction.
type AddressHandler struct {
	Session *gocql.Session
}

func (h *AddressHandler) List(c *gin.Context) {
	customerID, err := gocql.ParseUUID(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	iter := h.Session.Query(`SELECT address_id, street, city, state, country, phone, created_at
		FROM addresses_by_customer WHERE customer_id = ?`, customerID).
		WithContext(c.Request.Context()).Iter()

	addresses := []models.Address{}
	var a models.Address
	for iter.Scan(&a.ID, &a.Street, &a.City, &a.State, &a.Country, &a.Phone, &a.CreatedAt) {
		a.CustomerID = customerID
		addresses = append(addresses, a)
		a = models.Address{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture adresses"})
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *AddressHandler) Create(c *gin.Context) {
	customerID, err := gocql.ParseUUID(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var a models.Address
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if a.Street == "" || a.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rue et ville obligatoires"})
		return
	}

	a.ID = gocql.TimeUUID()
	a.CustomerID = customerID
	a.CreatedAt = time.Now()

	if err := h.Session.Query(`INSERT INTO addresses_by_customer (customer_id, address_id, street, city, state, country, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.CustomerID, a.ID, a.Street, a.City, a.State, a.Country, a.Phone, a.CreatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création adresse"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AddressHandler) Update(c *gin.Context) {
	customerID, err := gocql.ParseUUID(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}
	addressID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	var a models.Address
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Session.Query(`UPDATE addresses_by_customer SET street = ?, city = ?, state = ?, country = ?, phone = ?
		WHERE customer_id = ? AND address_id = ?`,
		a.Street, a.City, a.State, a.Country, a.Phone, customerID, addressID).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour adresse"})
		return
	}

	a.ID = addressID
	a.CustomerID = customerID
	c.JSON(http.StatusOK, a)
}

func (h *AddressHandler) Delete(c *gin.Context) {
	customerID, err := gocql.ParseUUID(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}
	addressID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	if err := h.Session.Query(`DELETE FROM addresses_by_customer WHERE customer_id = ? AND address_id = ?`,
		customerID, addressID).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression adresse"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": addressID.String()})
}
