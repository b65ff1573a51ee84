package routes

import (
	"graphics2prints_backend/internal/handlers"
	"graphics2prints_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, s *handlers.Set) {
	api := r.Group("/api", middleware.APIRateLimit(s.Redis))

	// Paiement
	api.GET("/payment/verify", s.Payment.Verify)
	api.POST("/payment/initialize", middleware.AuthRequired(), s.Payment.Initialize)

	// Catalogue (lecture publique)
	api.GET("/products", s.Products.List)
	api.GET("/products/search", s.Products.Search)
	api.GET("/products/:id", s.Products.Get)

	// Auth
	api.POST("/auth/register", s.Auth.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(s.Redis), s.Auth.Login)
	api.GET("/auth/me", middleware.AuthRequired(), s.Auth.Me)
	api.GET("/auth/oauth", s.Auth.OAuthBegin)
	api.GET("/auth/oauth/callback", s.Auth.OAuthCallback)

	// Espace client
	authed := api.Group("", middleware.AuthRequired())
	authed.GET("/orders", s.Orders.MyOrders)
	authed.GET("/addresses", s.Addresses.List)
	authed.POST("/addresses", s.Addresses.Create)
	authed.PUT("/addresses/:id", s.Addresses.Update)
	authed.DELETE("/addresses/:id", s.Addresses.Delete)

	// Infos boutique
	api.GET("/settings", s.Settings.Get)

	// Console admin
	admin := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin())
	admin.POST("/products", s.Products.Create)
	admin.PUT("/products/:id", s.Products.Update)
	admin.DELETE("/products/:id", s.Products.Delete)
	admin.POST("/images", s.Images.Upload)
	admin.GET("/orders/:reference", s.Orders.ByReference)
	admin.PUT("/settings", s.Settings.Update)
}
