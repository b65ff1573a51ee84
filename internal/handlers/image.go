package handlers

import (
	"log"
	"net/http"

	"graphics2prints_backend/internal/media"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	Media *media.Store
}

// Upload pousse le visuel produit vers l'hébergeur média et renvoie son
// URL publique. Le backend n'écrit jamais le fichier sur disque.
func (h *ImageHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'image' manquant"})
		return
	}

	url, err := h.Media.Upload(c.Request.Context(), file)
	if err != nil {
		log.Println("❌ Erreur upload MinIO :", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Hébergeur d'images indisponible"})
		return
	}

	log.Printf("🖼️ Image uploadée : %s", url)
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
