package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"graphics2prints_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

const settingsCacheKey = "settings:store"

// SettingsHandler expose les infos boutique (retrait, livraison, support).
// Une seule ligne en base, clé fixe "store", cachée dans Redis.
type SettingsHandler struct {
	Session *gocql.Session
	Redis   *redis.Client
}

func (h *SettingsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if h.Redis != nil {
		if val, err := h.Redis.Get(ctx, settingsCacheKey).Result(); err == nil && val != "" {
			var cached models.StoreSettings
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	var s models.StoreSettings
	err := h.Session.Query(`SELECT pickup_address, delivery_note, support_email, support_phone, updated_at
		FROM store_settings WHERE id = 'store'`).
		WithContext(ctx).
		Scan(&s.PickupAddress, &s.DeliveryNote, &s.SupportEmail, &s.SupportPhone, &s.UpdatedAt)
	if err != nil && err != gocql.ErrNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture paramètres"})
		return
	}

	if h.Redis != nil {
		if data, err := json.Marshal(s); err == nil {
			h.Redis.Set(ctx, settingsCacheKey, data, time.Hour)
		}
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var s models.StoreSettings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.UpdatedAt = time.Now()

	ctx := c.Request.Context()
	if err := h.Session.Query(`INSERT INTO store_settings (id, pickup_address, delivery_note, support_email, support_phone, updated_at)
		VALUES ('store', ?, ?, ?, ?, ?)`,
		s.PickupAddress, s.DeliveryNote, s.SupportEmail, s.SupportPhone, s.UpdatedAt).
		WithContext(ctx).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur écriture paramètres"})
		return
	}

	if h.Redis != nil {
		h.Redis.Del(ctx, settingsCacheKey)
	}
	c.JSON(http.StatusOK, s)
}
