package notification

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/errs"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/mailer"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Emails monta e envia os e-mails transacionais de forma síncrona.
// Os endpoints internos chamam direto; o Dispatcher chama em background.
type Emails struct {
	repo    domain.Repository
	sender  mailer.Sender
	baseURL string
	logger  *slog.Logger
}

func NewEmails(
	repo domain.Repository,
	sender mailer.Sender,
	baseURL string,
	logger *slog.Logger,
) *Emails {
	return &Emails{
		repo:    repo,
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (e *Emails) loadBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, err := e.repo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeBookingNotFound)
		}
		return nil, err
	}
	if b.Service == nil || b.Barber == nil {
		return nil, errs.New("booking without service or barber")
	}
	return b, nil
}

func (e *Emails) CancelURL(b *models.Booking) string {
	return e.baseURL + "/bookings/" + b.ID.String() + "/cancel?token=" + b.CancellationToken
}

func (e *Emails) BookingURL(barber *models.Barber) string {
	return e.baseURL + "/barbers/" + barber.Slug
}

// ======================================================
// Confirmação
// ======================================================

func (e *Emails) SendConfirmation(ctx context.Context, bookingID uuid.UUID) error {
	b, err := e.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	loc := timezone.Location(b.Barber.Timezone)

	location := "Atendimento a domicílio: " + b.CustomerAddress
	if domain.LocationType(b.LocationType) == domain.LocationInShop {
		location = strings.Trim(b.Barber.Address+", "+b.Barber.City, ", ")
	}

	payment := "Pagamento na barbearia"
	if domain.PaymentMethod(b.PaymentMethod) == domain.PaymentOnline {
		payment = "Pagamento online"
	}

	msg, err := mailer.Confirmation(b.CustomerEmail, mailer.ConfirmationData{
		CustomerName: b.CustomerName,
		ShopName:     b.Barber.ShopName,
		ServiceTitle: b.Service.Title,
		Date:         domain.FormatDate(b.StartsAt, loc),
		Time:         domain.FormatTimeSlot(b.StartsAt, b.EndsAt, loc),
		Location:     location,
		Price:        "R$ " + strings.Replace(b.Service.Price.StringFixed(2), ".", ",", 1),
		PaymentLabel: payment,
		CancelURL:    e.CancelURL(b),
	})
	if err != nil {
		return errs.Wrap(err, "render confirmation")
	}

	err = e.sender.Send(ctx, msg)
	metrics.IncNotification("confirmation", err == nil)
	return err
}

// ======================================================
// Cancelamento
// ======================================================

func (e *Emails) SendCancellation(ctx context.Context, bookingID uuid.UUID) error {
	b, err := e.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	loc := timezone.Location(b.Barber.Timezone)

	msg, err := mailer.Cancellation(b.CustomerEmail, mailer.CancellationData{
		CustomerName: b.CustomerName,
		ShopName:     b.Barber.ShopName,
		ServiceTitle: b.Service.Title,
		Date:         domain.FormatDate(b.StartsAt, loc),
		Time:         domain.FormatTimeSlot(b.StartsAt, b.EndsAt, loc),
		BookAgainURL: e.BookingURL(b.Barber),
	})
	if err != nil {
		return errs.Wrap(err, "render cancellation")
	}

	err = e.sender.Send(ctx, msg)
	metrics.IncNotification("cancellation", err == nil)
	return err
}

// ======================================================
// Horário liberado
// ======================================================

type SlotAvailableInput struct {
	Email      string
	BarberName string
	Date       string
	BookingURL string
}

func (e *Emails) SendSlotAvailable(ctx context.Context, in SlotAvailableInput) error {
	url := in.BookingURL
	if url == "" {
		url = e.baseURL
	}

	msg, err := mailer.SlotAvailable(in.Email, mailer.SlotAvailableData{
		ShopName:   in.BarberName,
		Date:       in.Date,
		BookingURL: url,
	})
	if err != nil {
		return errs.Wrap(err, "render slot available")
	}

	err = e.sender.Send(ctx, msg)
	metrics.IncNotification("slot_available", err == nil)
	return err
}

// NotifySlotFreed avisa todos os inscritos ativos do barbeiro do
// agendamento. Falhas individuais não interrompem o envio.
func (e *Emails) NotifySlotFreed(ctx context.Context, bookingID uuid.UUID) (int, error) {
	b, err := e.loadBooking(ctx, bookingID)
	if err != nil {
		return 0, err
	}

	subs, err := e.repo.ListActiveSubscribers(ctx, b.BarberID)
	if err != nil {
		return 0, err
	}

	loc := timezone.Location(b.Barber.Timezone)
	date := domain.FormatDate(b.StartsAt, loc)
	url := e.BookingURL(b.Barber)

	sent := 0
	for _, sub := range subs {
		if err := e.SendSlotAvailable(ctx, SlotAvailableInput{
			Email:      sub.SubscriberEmail,
			BarberName: b.Barber.ShopName,
			Date:       date,
			BookingURL: url,
		}); err != nil {
			e.logger.Warn("slot available email failed",
				"booking_id", bookingID,
				"subscriber", sub.SubscriberEmail,
				"error", err,
			)
			continue
		}
		sent++
	}

	return sent, nil
}
