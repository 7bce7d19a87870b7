package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// UpdateBookingStatus é a ação do dono: concluir, faltou ou cancelar.
// O dono não está sujeito à janela de 24h.
type UpdateBookingStatus struct {
	Deps
}

func NewUpdateBookingStatus(deps Deps) *UpdateBookingStatus {
	return &UpdateBookingStatus{Deps: deps}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	barberID uuid.UUID,
	userID uuid.UUID,
	bookingID uuid.UUID,
	next domain.Status,
) (*models.Booking, error) {

	b, err := loadBooking(ctx, uc.Repo, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BarberID != barberID {
		return nil, httperr.ErrBusiness(httperr.CodeBookingNotFound)
	}

	previous := b.Status
	if err := domain.Apply(b, next, uc.Clock.Now()); err != nil {
		return nil, err
	}

	if err := saveTransition(ctx, uc.Repo, b, domain.Status(previous)); err != nil {
		return nil, err
	}

	metrics.IncBookingStatus(b.Status)

	uc.Audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &userID,
		Action:   "booking_" + b.Status,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{"from": previous, "to": b.Status},
	})

	if next == domain.StatusCancelled {
		uc.Cache.Invalidate(ctx, b.BarberID)
		metrics.IncBookingCancelled()
		uc.Notifier.BookingEvent(events.BookingCancelled, *b)
		uc.Notifier.BookingCancelled(*b)
		return b, nil
	}

	uc.Notifier.BookingEvent(events.BookingStatusChanged, *b)
	return b, nil
}
