package payment

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/barber-booking/internal/errs"
)

const ProviderMercadoPago = "mercadopago"

type MercadoPago struct {
	preferences preference.Client
	payments    mppayment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, errs.Wrap(err, "mercadopago config")
	}

	return &MercadoPago{
		preferences: preference.NewClient(cfg),
		payments:    mppayment.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) Provider() string {
	return ProviderMercadoPago
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, in CheckoutInput) (Checkout, error) {
	amount, _ := in.Amount.Float64()

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         in.BookingID.String(),
				Title:      in.Title,
				Quantity:   1,
				UnitPrice:  amount,
				CurrencyID: in.Currency,
			},
		},
		Payer: &preference.PayerRequest{
			Name:  in.CustomerName,
			Email: in.CustomerEmail,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: in.SuccessURL,
			Failure: in.FailureURL,
			Pending: in.PendingURL,
		},
		AutoReturn:        "approved",
		ExternalReference: in.BookingID.String(),
		NotificationURL:   in.WebhookURL,
		Metadata: map[string]any{
			"booking_id": in.BookingID.String(),
		},
	}

	res, err := m.preferences.Create(ctx, req)
	if err != nil {
		return Checkout{}, errs.Wrap(err, "mercadopago create preference")
	}

	return Checkout{PreferenceID: res.ID, URL: res.InitPoint}, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, providerPaymentID string) (Info, error) {
	id, err := strconv.Atoi(providerPaymentID)
	if err != nil {
		return Info{}, errs.Wrapf(err, "invalid payment id %q", providerPaymentID)
	}

	res, err := m.payments.Get(ctx, id)
	if err != nil {
		return Info{}, errs.Wrap(err, "mercadopago get payment")
	}

	bookingID, err := uuid.Parse(res.ExternalReference)
	if err != nil {
		return Info{}, errs.Wrapf(err, "payment %d without booking reference", res.ID)
	}

	return Info{
		ProviderPaymentID: strconv.Itoa(res.ID),
		Status:            res.Status,
		BookingID:         bookingID,
	}, nil
}

var _ Gateway = (*MercadoPago)(nil)
