package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type SubscriberHandler struct {
	db *gorm.DB
}

func NewSubscriberHandler(db *gorm.DB) *SubscriberHandler {
	return &SubscriberHandler{db: db}
}

func (h *SubscriberHandler) List(c *gin.Context) {
	q := h.db.Where("barber_id = ?", middleware.BarberID(c))
	if c.Query("all") != "true" {
		q = q.Where("active = ?", true)
	}

	var subs []models.NotificationSubscription
	if err := q.Order("created_at DESC").Find(&subs).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, subs)
}
