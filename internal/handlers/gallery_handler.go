package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
)

const maxUploadBytes = 8 << 20

type GalleryHandler struct {
	db       *gorm.DB
	store    storage.ImageStore
	audit    *audit.Dispatcher
	maxWidth int
}

// NewGalleryHandler aceita store nil (S3 não configurado): uploads respondem 503.
func NewGalleryHandler(
	db *gorm.DB,
	store storage.ImageStore,
	audit *audit.Dispatcher,
	maxWidth int,
) *GalleryHandler {
	return &GalleryHandler{db: db, store: store, audit: audit, maxWidth: maxWidth}
}

func (h *GalleryHandler) List(c *gin.Context) {
	var images []models.GalleryImage
	if err := h.db.
		Where("barber_id = ?", middleware.BarberID(c)).
		Order("position ASC, created_at ASC").
		Find(&images).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *GalleryHandler) Upload(c *gin.Context) {
	if h.store == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_unavailable", "Armazenamento de imagens não configurado.")
		return
	}

	barberID := middleware.BarberID(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("image")
	if err != nil {
		httperr.Validation(c, map[string]string{"image": "Envie uma imagem de até 8 MB."})
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Validation(c, map[string]string{"image": "Arquivo ilegível."})
		return
	}
	defer f.Close()

	body, err := storage.ToWebP(f, h.maxWidth)
	if err != nil {
		httperr.Validation(c, map[string]string{"image": "Formato de imagem não suportado."})
		return
	}

	key := fmt.Sprintf("gallery/%s/%s.webp", barberID, uuid.New())
	url, err := h.store.Put(c.Request.Context(), key, "image/webp", body)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var position int64
	h.db.Model(&models.GalleryImage{}).Where("barber_id = ?", barberID).Count(&position)

	img := models.GalleryImage{
		BarberID:   barberID,
		URL:        url,
		StorageKey: key,
		Position:   int(position),
	}
	if err := h.db.Create(&img).Error; err != nil {
		_ = h.store.Delete(c.Request.Context(), key)
		httperr.FromError(c, err)
		return
	}

	h.dispatch(c, img, "gallery_image_added")
	httpresp.Created(c, img)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", httperr.CodeNotFound)
	if !ok {
		return
	}

	var img models.GalleryImage
	err := h.db.Where("id = ? AND barber_id = ?", id, middleware.BarberID(c)).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeNotFound))
		return
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.db.Delete(&img).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	// objeto órfão no bucket não quebra nada
	if h.store != nil && img.StorageKey != "" {
		_ = h.store.Delete(c.Request.Context(), img.StorageKey)
	}

	h.dispatch(c, img, "gallery_image_removed")
	httpresp.NoContent(c)
}

func (h *GalleryHandler) dispatch(c *gin.Context, img models.GalleryImage, action string) {
	userID := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		BarberID: img.BarberID,
		UserID:   &userID,
		Action:   action,
		Entity:   "gallery_image",
		EntityID: &img.ID,
	})
}
