package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"graphics2prints_backend/internal/customers"
	"graphics2prints_backend/internal/models"
	"graphics2prints_backend/internal/orders"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Customers *customers.Store
}

// ================== AUTH LOCALE ==================

func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	customer, err := h.Customers.Create(c.Request.Context(), models.Customer{
		Email:    input.Email,
		Name:     input.Name,
		Password: string(hashedPassword),
		Role:     "customer",
		Provider: "local",
	})
	if errors.Is(err, customers.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, _ := generateJWT(customer)
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"id":    customer.ID.String(),
		"email": customer.Email,
		"name":  customer.Name,
		"role":  customer.Role,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.Customers.ByEmail(c.Request.Context(), input.Email)
	if errors.Is(err, orders.ErrCustomerNotFound) {
		// Même message qu'un mauvais mot de passe, on ne révèle pas
		// l'existence du compte.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	token, _ := generateJWT(customer)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"id":    customer.ID.String(),
		"email": customer.Email,
		"name":  customer.Name,
		"role":  customer.Role,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	id, err := gocql.ParseUUID(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
		return
	}

	customer, err := h.Customers.ByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Compte introuvable"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func generateJWT(customer models.Customer) (string, error) {
	secret := os.Getenv("JWT_SECRET")

	claims := jwt.MapClaims{
		"customer_id": customer.ID.String(),
		"email":       customer.Email,
		"role":        customer.Role,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
