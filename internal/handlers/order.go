package handlers

import (
	"net/http"

	"graphics2prints_backend/internal/models"
	"graphics2prints_backend/internal/orders"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

type OrderHandler struct {
	Store *orders.ScyllaStore
}

// MyOrders liste les commandes du client connecté, les plus récentes d'abord.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	customerID, err := gocql.ParseUUID(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	list, err := h.Store.ByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// ByReference recharge une commande par référence de paiement (support admin).
func (h *OrderHandler) ByReference(c *gin.Context) {
	reference := c.Param("reference")

	order, err := h.Store.ByReference(c.Request.Context(), reference)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	c.JSON(http.StatusOK, order)
}
