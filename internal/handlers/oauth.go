package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"

	"graphics2prints_backend/internal/models"
	"graphics2prints_backend/internal/orders"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
)

// OAuthBegin redirige vers le provider (?provider=google).
func (h *AuthHandler) OAuthBegin(c *gin.Context) {
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// OAuthCallback termine le flow goth : le compte est créé au premier
// login, puis on redirige vers le front avec un JWT en query.
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("❌ Callback OAuth en échec: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentification externe échouée"})
		return
	}

	ctx := c.Request.Context()
	customer, err := h.Customers.ByEmail(ctx, gothUser.Email)
	if errors.Is(err, orders.ErrCustomerNotFound) {
		customer, err = h.Customers.Create(ctx, models.Customer{
			Email:    gothUser.Email,
			Name:     gothUser.Name,
			Role:     "customer",
			Provider: gothUser.Provider,
		})
	}
	if err != nil {
		log.Printf("❌ Upsert client OAuth en échec: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := generateJWT(customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	log.Printf("✅ Login %s pour %s", gothUser.Provider, gothUser.Email)
	c.Redirect(http.StatusTemporaryRedirect, frontend+"/auth/callback?token="+url.QueryEscape(token))
}
