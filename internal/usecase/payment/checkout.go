package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/errs"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/payment"
)

// StartCheckout cria (ou reaproveita) a preferência de pagamento de um
// agendamento online.
type StartCheckout struct {
	repo     domain.Repository
	gateway  payment.Gateway
	audit    *audit.Dispatcher
	currency string
	baseURL  string
	apiURL   string
}

func NewStartCheckout(
	repo domain.Repository,
	gateway payment.Gateway,
	audit *audit.Dispatcher,
	currency string,
	baseURL string,
	apiURL string,
) *StartCheckout {
	if currency == "" {
		currency = "BRL"
	}
	return &StartCheckout{
		repo:     repo,
		gateway:  gateway,
		audit:    audit,
		currency: currency,
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiURL:   strings.TrimRight(apiURL, "/"),
	}
}

// Execute atende o pedido público de link de pagamento.
func (uc *StartCheckout) Execute(ctx context.Context, bookingID uuid.UUID) (string, error) {
	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", httperr.ErrBusiness(httperr.CodeBookingNotFound)
		}
		return "", err
	}

	if domain.PaymentMethod(b.PaymentMethod) != domain.PaymentOnline {
		return "", httperr.ErrBusiness(httperr.CodeNotOnlinePayment)
	}
	if domain.PaymentStatus(b.PaymentStatus) == domain.PaymentCompleted {
		return "", httperr.ErrBusiness(httperr.CodeAlreadyPaid)
	}
	if domain.Status(b.Status) != domain.StatusBooked {
		return "", httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	existing, err := uc.repo.GetPaymentByBooking(ctx, b.ID)
	if err == nil && existing.CheckoutURL != "" &&
		domain.PaymentStatus(existing.Status) == domain.PaymentPending {
		return existing.CheckoutURL, nil
	}

	return uc.Start(ctx, b)
}

// Start cria a preferência no provedor e grava o pagamento pendente.
func (uc *StartCheckout) Start(ctx context.Context, b *models.Booking) (string, error) {
	if b.Service == nil {
		svc, err := uc.repo.GetService(ctx, b.ServiceID)
		if err != nil {
			return "", err
		}
		b.Service = svc
	}

	title := b.Service.Title
	if b.Barber != nil {
		title = b.Service.Title + " - " + b.Barber.ShopName
	}

	back := uc.baseURL + "/bookings/" + b.ID.String() + "/payment"

	co, err := uc.gateway.CreateCheckout(ctx, payment.CheckoutInput{
		BookingID:     b.ID,
		Title:         title,
		Amount:        b.Service.Price,
		Currency:      uc.currency,
		CustomerEmail: b.CustomerEmail,
		CustomerName:  b.CustomerName,
		SuccessURL:    back + "?result=success",
		FailureURL:    back + "?result=failure",
		PendingURL:    back + "?result=pending",
		WebhookURL:    uc.apiURL + "/api/payments/webhook",
	})
	if err != nil {
		return "", errs.Wrap(err, "create checkout")
	}

	p := &models.Payment{
		BookingID:    b.ID,
		Provider:     uc.gateway.Provider(),
		PreferenceID: co.PreferenceID,
		CheckoutURL:  co.URL,
		Amount:       b.Service.Price,
		Currency:     uc.currency,
		Status:       string(domain.PaymentPending),
	}
	if err := uc.repo.SavePayment(ctx, p); err != nil {
		return "", err
	}

	if err := uc.repo.UpdateBookingPayment(ctx, b.ID, "", co.PreferenceID); err != nil {
		return "", err
	}
	b.PaymentIntentID = co.PreferenceID

	uc.audit.Dispatch(audit.Event{
		BarberID: b.BarberID,
		Action:   "payment_checkout_created",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]string{"preference_id": co.PreferenceID},
	})

	return co.URL, nil
}
