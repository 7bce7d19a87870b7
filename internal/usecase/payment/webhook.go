package payment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/payment"
)

type WebhookInput struct {
	Topic     string // "payment", "merchant_order", ...
	DataID    string
	Signature string
	RequestID string
}

// HandleWebhook processa a notificação do provedor. Reentregas do mesmo
// status não disparam um segundo e-mail.
type HandleWebhook struct {
	repo     domain.Repository
	gateway  payment.Gateway
	notifier domain.Notifier
	audit    *audit.Dispatcher
	secret   string
}

func NewHandleWebhook(
	repo domain.Repository,
	gateway payment.Gateway,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
	secret string,
) *HandleWebhook {
	return &HandleWebhook{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
		audit:    audit,
		secret:   secret,
	}
}

func (uc *HandleWebhook) Execute(ctx context.Context, in WebhookInput) error {
	if err := payment.VerifySignature(uc.secret, in.Signature, in.RequestID, in.DataID); err != nil {
		metrics.IncPaymentWebhook("invalid_signature")
		return httperr.ErrBusiness(httperr.CodeInvalidSignature)
	}

	if in.Topic != "payment" || in.DataID == "" {
		metrics.IncPaymentWebhook("ignored")
		return nil
	}

	info, err := uc.gateway.GetPayment(ctx, in.DataID)
	if err != nil {
		return err
	}

	next, ok := payment.MapStatus(info.Status)
	if !ok {
		metrics.IncPaymentWebhook("ignored")
		return nil
	}

	b, err := uc.repo.GetBooking(ctx, info.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.IncPaymentWebhook("unknown_booking")
			return nil
		}
		return err
	}

	previous := domain.PaymentStatus(b.PaymentStatus)

	p, err := uc.repo.GetPaymentByBooking(ctx, b.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		p = &models.Payment{
			BookingID: b.ID,
			Provider:  uc.gateway.Provider(),
		}
		if b.Service != nil {
			p.Amount = b.Service.Price
		}
	}
	p.ProviderPaymentID = info.ProviderPaymentID
	p.Status = string(next)
	if err := uc.repo.SavePayment(ctx, p); err != nil {
		return err
	}

	metrics.IncPaymentWebhook(string(next))

	if previous == next {
		return nil
	}

	if err := uc.repo.UpdateBookingPayment(ctx, b.ID, next, ""); err != nil {
		return err
	}

	// o cliente pode ter cancelado enquanto o pagamento era processado
	current, err := uc.repo.GetBooking(ctx, b.ID)
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: current.BarberID,
		Action:   "payment_" + string(next),
		Entity:   "booking",
		EntityID: &current.ID,
		Metadata: map[string]string{
			"provider_payment_id": info.ProviderPaymentID,
			"from":                string(previous),
		},
	})
	uc.notifier.BookingEvent(events.PaymentUpdated, *current)

	if next != domain.PaymentCompleted {
		return nil
	}

	if domain.Status(current.Status) != domain.StatusBooked {
		metrics.IncPaymentWebhook("paid_not_booked")
		uc.audit.Dispatch(audit.Event{
			BarberID: current.BarberID,
			Action:   "payment_received_for_inactive_booking",
			Entity:   "booking",
			EntityID: &current.ID,
			Metadata: map[string]string{
				"provider_payment_id": info.ProviderPaymentID,
				"status":              current.Status,
				"refund":              "required",
			},
		})
		return nil
	}

	uc.notifier.BookingConfirmed(*current)
	return nil
}
