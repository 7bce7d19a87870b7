package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/clock"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAvailability "github.com/BruksfildServices01/barber-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucNotification "github.com/BruksfildServices01/barber-booking/internal/usecase/notification"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	repo  domain.Repository
	app   config.AppConfig
	clock clock.Clock

	dates     *ucAvailability.GetDates
	slots     *ucAvailability.GetSlots
	create    *ucBooking.CreateBooking
	cancel    *ucBooking.CancelBooking
	get       *ucBooking.GetBooking
	subscribe *ucNotification.Subscribe
}

func NewPublicHandler(
	repo domain.Repository,
	app config.AppConfig,
	clock clock.Clock,
	dates *ucAvailability.GetDates,
	slots *ucAvailability.GetSlots,
	create *ucBooking.CreateBooking,
	cancel *ucBooking.CancelBooking,
	get *ucBooking.GetBooking,
	subscribe *ucNotification.Subscribe,
) *PublicHandler {
	return &PublicHandler{
		repo:      repo,
		app:       app,
		clock:     clock,
		dates:     dates,
		slots:     slots,
		create:    create,
		cancel:    cancel,
		get:       get,
		subscribe: subscribe,
	}
}

////////////////////////////////////////////////////////
// BARBERS
////////////////////////////////////////////////////////

// ListBarbers devolve o catálogo; no modo single só a barbearia configurada.
func (h *PublicHandler) ListBarbers(c *gin.Context) {
	ctx := c.Request.Context()

	if h.app.Mode == "single" {
		b, err := h.repo.GetBarberBySlug(ctx, h.app.SingleSlug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				httpresp.List(c, []models.Barber{})
				return
			}
			httperr.FromError(c, err)
			return
		}
		httpresp.List(c, []models.Barber{*b})
		return
	}

	barbers, err := h.repo.ListBarbers(ctx)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *PublicHandler) GetBarber(c *gin.Context) {
	ctx := c.Request.Context()

	barber, err := h.repo.GetBarberBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeBarberNotFound))
			return
		}
		httperr.FromError(c, err)
		return
	}

	services, err := h.repo.ListServices(ctx, barber.ID, true)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	gallery, err := h.repo.ListGalleryImages(ctx, barber.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber":   barber,
		"services": services,
		"gallery":  gallery,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailableDates(c *gin.Context) {
	barberID, ok := uuidQuery(c, "barber_id")
	if !ok {
		return
	}
	serviceID, ok := uuidQuery(c, "service_id")
	if !ok {
		return
	}

	dates, err := h.dates.Execute(c.Request.Context(), barberID, serviceID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *PublicHandler) AvailableSlots(c *gin.Context) {
	barberID, ok := uuidQuery(c, "barber_id")
	if !ok {
		return
	}
	serviceID, ok := uuidQuery(c, "service_id")
	if !ok {
		return
	}

	date := c.Query("date")
	slots, err := h.slots.Execute(c.Request.Context(), barberID, serviceID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// BOOKINGS
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	// formatos já garantidos pelo validator
	barberID, _ := uuid.Parse(req.BarberID)
	serviceID, _ := uuid.Parse(req.ServiceID)
	startsAt, _ := time.Parse(time.RFC3339, req.StartsAt)

	in := ucBooking.CreateBookingInput{
		BarberID:        barberID,
		ServiceID:       serviceID,
		StartsAt:        startsAt,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		LocationType:    domain.LocationType(req.LocationType),
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
	}
	if req.EndsAt != "" {
		endsAt, _ := time.Parse(time.RFC3339, req.EndsAt)
		in.EndsAt = &endsAt
	}

	out, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateBookingResponse{
		BookingID:  out.Booking.ID,
		PaymentURL: out.PaymentURL,
	})
}

func (h *PublicHandler) GetBooking(c *gin.Context) {
	id, ok := uuidParam(c, "id", httperr.CodeBookingNotFound)
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), id, c.Query("token"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := dto.BookingPublicDTO{
		ID:            b.ID,
		StartsAt:      b.StartsAt,
		EndsAt:        b.EndsAt,
		Status:        b.Status,
		PaymentMethod: b.PaymentMethod,
		PaymentStatus: b.PaymentStatus,
		LocationType:  b.LocationType,
		CustomerName:  b.CustomerName,
		CanCancel: domain.Status(b.Status) == domain.StatusBooked &&
			domain.CanCancel(b.StartsAt, h.clock.Now()),
	}
	if b.Barber != nil {
		out.ShopName = b.Barber.ShopName
	}
	if b.Service != nil {
		out.ServiceTitle = b.Service.Title
		out.Price = b.Service.Price
	}

	c.JSON(http.StatusOK, out)
}

func (h *PublicHandler) CancelBooking(c *gin.Context) {
	id, ok := uuidParam(c, "id", httperr.CodeBookingNotFound)
	if !ok {
		return
	}

	var req dto.CancelBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.cancel.Execute(c.Request.Context(), id, req.Token); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CancelBookingResponse{
		Success: true,
		Message: "Agendamento cancelado com sucesso.",
	})
}

////////////////////////////////////////////////////////
// NOTIFICATIONS
////////////////////////////////////////////////////////

var subscribeMessages = map[string]string{
	ucNotification.StatusSubscribed:        "Você será avisado quando um horário abrir.",
	ucNotification.StatusReactivated:       "Inscrição reativada.",
	ucNotification.StatusAlreadySubscribed: "Você já está inscrito.",
}

func (h *PublicHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if !bindJSON(c, &req) {
		return
	}

	barberID, _ := uuid.Parse(req.BarberID)

	status, err := h.subscribe.Execute(c.Request.Context(), barberID, req.SubscriberEmail)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	code := http.StatusOK
	if status == ucNotification.StatusSubscribed {
		code = http.StatusCreated
	}

	c.JSON(code, dto.SubscribeResponse{
		Success: true,
		Status:  status,
		Message: subscribeMessages[status],
	})
}
