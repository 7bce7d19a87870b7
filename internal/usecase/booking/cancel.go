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

// CancelBooking é o cancelamento feito pelo cliente com o token do e-mail.
type CancelBooking struct {
	Deps
}

func NewCancelBooking(deps Deps) *CancelBooking {
	return &CancelBooking{Deps: deps}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	token string,
) (*models.Booking, error) {

	if token == "" {
		return nil, httperr.ErrBusiness(httperr.CodeTokenRequired)
	}

	b, err := loadBooking(ctx, uc.Repo, bookingID)
	if err != nil {
		return nil, err
	}

	if err := domain.CustomerCancel(b, token, uc.Clock.Now()); err != nil {
		return nil, err
	}

	if err := saveTransition(ctx, uc.Repo, b, domain.StatusBooked); err != nil {
		return nil, err
	}

	uc.Cache.Invalidate(ctx, b.BarberID)
	metrics.IncBookingCancelled()

	uc.Audit.Dispatch(audit.Event{
		BarberID: b.BarberID,
		Action:   "booking_cancelled_by_customer",
		Entity:   "booking",
		EntityID: &b.ID,
	})
	uc.Notifier.BookingEvent(events.BookingCancelled, *b)
	uc.Notifier.BookingCancelled(*b)

	return b, nil
}

// GetBooking devolve o agendamento para quem tem o token de cancelamento.
type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	token string,
) (*models.Booking, error) {

	if token == "" {
		return nil, httperr.ErrBusiness(httperr.CodeTokenRequired)
	}

	b, err := loadBooking(ctx, uc.repo, bookingID)
	if err != nil {
		return nil, err
	}

	if !domain.TokenMatches(b.CancellationToken, token) {
		return nil, httperr.ErrBusiness(httperr.CodeBookingNotFound)
	}
	return b, nil
}
