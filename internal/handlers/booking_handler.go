package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo   domain.Repository
	clock  clock.Clock
	list   *ucBooking.ListBookings
	export *ucBooking.ExportBookings
	status *ucBooking.UpdateBookingStatus
}

func NewBookingHandler(
	repo domain.Repository,
	clock clock.Clock,
	list *ucBooking.ListBookings,
	export *ucBooking.ExportBookings,
	status *ucBooking.UpdateBookingStatus,
) *BookingHandler {
	return &BookingHandler{
		repo:   repo,
		clock:  clock,
		list:   list,
		export: export,
		status: status,
	}
}

// input monta o filtro; sem from/to usa o mês corrente no fuso do barbeiro.
func (h *BookingHandler) input(c *gin.Context) (ucBooking.ListBookingsInput, error) {
	barberID := middleware.BarberID(c)

	in := ucBooking.ListBookingsInput{
		BarberID: barberID,
		From:     c.Query("from"),
		To:       c.Query("to"),
		Status:   c.Query("status"),
	}

	if in.From == "" && in.To == "" {
		barber, err := h.repo.GetBarberByID(c.Request.Context(), barberID)
		if err != nil {
			return in, err
		}
		in.From, in.To = ucBooking.DefaultRange(h.clock.Now(), barber.Timezone)
	}
	return in, nil
}

func (h *BookingHandler) List(c *gin.Context) {
	in, err := h.input(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	rows, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":     in.From,
		"to":       in.To,
		"bookings": rows,
	})
}

func (h *BookingHandler) Export(c *gin.Context) {
	in, err := h.input(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	buf, err := h.export.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	filename := fmt.Sprintf("agendamentos_%s_%s.xlsx", in.From, in.To)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id", httperr.CodeBookingNotFound)
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.status.Execute(
		c.Request.Context(),
		middleware.BarberID(c),
		middleware.UserID(c),
		id,
		domain.Status(req.Status),
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           b.ID,
		"status":       b.Status,
		"cancelled_at": b.CancelledAt,
		"completed_at": b.CompletedAt,
	})
}
