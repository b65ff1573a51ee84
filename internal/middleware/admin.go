package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin se place après AuthRequired et bloque tout rôle non admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
			c.Abort()
			return
		}
		c.Next()
	}
}
