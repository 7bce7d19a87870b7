package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	ucNotification "github.com/BruksfildServices01/barber-booking/internal/usecase/notification"
)

// InternalHandler expõe o envio síncrono de e-mails para outros serviços.
type InternalHandler struct {
	emails *ucNotification.Emails
}

func NewInternalHandler(emails *ucNotification.Emails) *InternalHandler {
	return &InternalHandler{emails: emails}
}

type bookingRef struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

type slotAvailableRequest struct {
	Email      string `json:"email" validate:"required,email"`
	BarberName string `json:"barber_name" validate:"required"`
	Date       string `json:"date" validate:"required"`
	BookingURL string `json:"booking_url" validate:"omitempty,url"`
}

func (h *InternalHandler) bookingID(c *gin.Context) (uuid.UUID, bool) {
	var req bookingRef
	if !bindJSON(c, &req) {
		return uuid.Nil, false
	}
	id, _ := uuid.Parse(req.BookingID)
	return id, true
}

func emailFailed(c *gin.Context, err error) {
	if _, ok := httperr.AsBusiness(err); ok {
		httperr.FromError(c, err)
		return
	}
	httperr.Write(c, http.StatusBadGateway, "email_failed", "Falha ao enviar e-mail.")
}

func (h *InternalHandler) BookingConfirmation(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	if err := h.emails.SendConfirmation(c.Request.Context(), id); err != nil {
		emailFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *InternalHandler) BookingCancellation(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	if err := h.emails.SendCancellation(c.Request.Context(), id); err != nil {
		emailFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *InternalHandler) SlotAvailableEmail(c *gin.Context) {
	var req slotAvailableRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.emails.SendSlotAvailable(c.Request.Context(), ucNotification.SlotAvailableInput{
		Email:      req.Email,
		BarberName: req.BarberName,
		Date:       req.Date,
		BookingURL: req.BookingURL,
	})
	if err != nil {
		emailFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *InternalHandler) NotifySlotFreed(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	sent, err := h.emails.NotifySlotFreed(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sent": sent})
}
