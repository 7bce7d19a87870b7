package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	cache cache.AvailabilityCache
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewServiceHandler(
	db *gorm.DB,
	cache cache.AvailabilityCache,
	audit *audit.Dispatcher,
	clock clock.Clock,
) *ServiceHandler {
	return &ServiceHandler{db: db, cache: cache, audit: audit, clock: clock}
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	barberID := middleware.BarberID(c)

	q := h.db.Where("barber_id = ?", barberID)

	switch c.Query("active") {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	var services []models.Service
	if err := q.Order("title ASC").Find(&services).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barberID := middleware.BarberID(c)

	var req dto.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if !validPrice(req.Price) {
		httperr.Validation(c, map[string]string{"price": "Preço inválido."})
		return
	}

	service := models.Service{
		BarberID:        barberID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price.Round(2),
		Active:          true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changed(c, service, "service_created")
	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}

	var req dto.UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		if !validPrice(*req.Price) {
			httperr.Validation(c, map[string]string{"price": "Preço inválido."})
			return
		}
		service.Price = req.Price.Round(2)
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(service).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changed(c, *service, "service_updated")
	c.JSON(http.StatusOK, service)
}

// Delete recusa quando há agendamentos futuros; o caminho é desativar.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}

	var future int64
	if err := h.db.Model(&models.Booking{}).
		Where("service_id = ? AND status = ? AND starts_at > ?",
			service.ID, string(domain.StatusBooked), h.clock.Now()).
		Count(&future).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if future > 0 {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeServiceHasBookings))
		return
	}

	if err := h.db.Delete(service).Error; err != nil {
		// histórico ainda referencia o serviço (ON DELETE RESTRICT)
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeServiceHasBookings))
		return
	}

	h.changed(c, *service, "service_deleted")
	httpresp.NoContent(c)
}

// --------- helpers ---------

func (h *ServiceHandler) load(c *gin.Context) (*models.Service, bool) {
	id, ok := uuidParam(c, "id", httperr.CodeServiceNotFound)
	if !ok {
		return nil, false
	}

	var service models.Service
	err := h.db.
		Where("id = ? AND barber_id = ?", id, middleware.BarberID(c)).
		First(&service).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeServiceNotFound))
		return nil, false
	}
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	return &service, true
}

func (h *ServiceHandler) changed(c *gin.Context, s models.Service, action string) {
	h.cache.Invalidate(c.Request.Context(), s.BarberID)

	userID := middleware.UserID(c)
	serviceID := s.ID
	h.audit.Dispatch(audit.Event{
		BarberID: s.BarberID,
		UserID:   &userID,
		Action:   action,
		Entity:   "service",
		EntityID: &serviceID,
		Metadata: map[string]string{"title": s.Title},
	})
}

func validPrice(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThan(decimal.NewFromInt(100000))
}
