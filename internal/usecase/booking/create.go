package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	BarberID  uuid.UUID
	ServiceID uuid.UUID

	StartsAt time.Time
	EndsAt   *time.Time

	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string

	LocationType  domain.LocationType
	PaymentMethod domain.PaymentMethod
}

type CreateBookingOutput struct {
	Booking    *models.Booking
	PaymentURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	Deps
	checkout CheckoutStarter
	logger   *slog.Logger
}

func NewCreateBooking(deps Deps, checkout CheckoutStarter, logger *slog.Logger) *CreateBooking {
	return &CreateBooking{
		Deps:     deps,
		checkout: checkout,
		logger:   logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (out CreateBookingOutput, err error) {

	defer func() {
		if be, ok := httperr.AsBusiness(err); ok {
			metrics.IncBookingRejected(be.Code)
		}
	}()

	// --------------------------------------------------
	// 1️⃣ Barbeiro e serviço
	// --------------------------------------------------
	barber, err := uc.Repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return out, httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
		return out, err
	}

	svc, err := uc.Repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return out, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		return out, err
	}
	if svc.BarberID != barber.ID {
		return out, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	if !svc.Active {
		return out, httperr.ErrBusiness(httperr.CodeServiceUnavailable)
	}

	// --------------------------------------------------
	// 2️⃣ Horário
	// --------------------------------------------------
	now := uc.Clock.Now().UTC()
	start := in.StartsAt.UTC()
	if !start.After(now) {
		return out, httperr.ErrBusiness(httperr.CodeStartInPast)
	}

	end := start.Add(svc.Duration())
	if in.EndsAt != nil && !in.EndsAt.UTC().Equal(end) {
		return out, httperr.ErrBusiness(httperr.CodeEndMismatch)
	}

	// --------------------------------------------------
	// 3️⃣ Local de atendimento
	// --------------------------------------------------
	address := strings.TrimSpace(in.CustomerAddress)
	if in.LocationType == domain.LocationHomeVisit {
		if !barber.TravelEnabled {
			return out, httperr.ErrBusiness(httperr.CodeHomeVisitUnavailable)
		}
		if address == "" {
			return out, httperr.ErrBusiness(httperr.CodeAddressRequired)
		}
	} else {
		address = ""
	}

	// --------------------------------------------------
	// 4️⃣ Disponibilidade e conflito
	// --------------------------------------------------
	if err := uc.checkWithinAvailability(ctx, barber, start, end); err != nil {
		return out, err
	}

	busy, err := uc.Repo.HasOverlap(ctx, barber.ID, start, end)
	if err != nil {
		return out, err
	}
	if busy {
		return out, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	// --------------------------------------------------
	// 5️⃣ Persistência
	// --------------------------------------------------
	token, err := domain.NewCancellationToken()
	if err != nil {
		return out, err
	}

	b := &models.Booking{
		BarberID:          barber.ID,
		ServiceID:         svc.ID,
		StartsAt:          start,
		EndsAt:            end,
		CustomerName:      strings.TrimSpace(in.CustomerName),
		CustomerEmail:     validators.NormalizeEmail(in.CustomerEmail),
		CustomerPhone:     strings.TrimSpace(in.CustomerPhone),
		CustomerAddress:   address,
		LocationType:      string(in.LocationType),
		PaymentMethod:     string(in.PaymentMethod),
		PaymentStatus:     string(domain.PaymentPending),
		Status:            string(domain.InitialStatus()),
		CancellationToken: token,
	}

	// a constraint de exclusão decide corridas entre pedidos simultâneos
	if err := uc.Repo.CreateBooking(ctx, b); err != nil {
		return out, err
	}

	b.Barber = barber
	b.Service = svc
	out.Booking = b

	uc.Cache.Invalidate(ctx, barber.ID)
	metrics.IncBookingCreated(b.PaymentMethod)

	uc.Audit.Dispatch(audit.Event{
		BarberID: barber.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"service_id":     svc.ID,
			"starts_at":      b.StartsAt,
			"location_type":  b.LocationType,
			"payment_method": b.PaymentMethod,
		},
	})
	uc.Notifier.BookingEvent(events.BookingCreated, *b)

	// --------------------------------------------------
	// 6️⃣ Pagamento / confirmação
	// --------------------------------------------------
	if in.PaymentMethod != domain.PaymentOnline {
		uc.Notifier.BookingConfirmed(*b)
		return out, nil
	}

	url, err := uc.checkout.Start(ctx, b)
	if err != nil {
		// agendamento fica válido; pagamento acontece na barbearia
		uc.logger.Warn("checkout failed, confirming booking without payment link",
			"booking_id", b.ID,
			"error", err,
		)
		uc.Notifier.BookingConfirmed(*b)
		return out, nil
	}

	out.PaymentURL = url
	return out, nil
}

// checkWithinAvailability exige que [start, end) caiba numa única janela
// do dia local do barbeiro.
func (uc *CreateBooking) checkWithinAvailability(
	ctx context.Context,
	barber *models.Barber,
	start, end time.Time,
) error {

	loc := timezone.Location(barber.Timezone)
	date := start.In(loc).Format(domain.DateLayout)

	rows, err := uc.Repo.ListAvailability(ctx, barber.ID, date, date)
	if err != nil {
		return err
	}

	for _, row := range rows {
		w, err := domain.WindowOf(row, loc)
		if err != nil {
			continue
		}
		if w.Contains(start, end) {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeOutsideAvailability)
}
