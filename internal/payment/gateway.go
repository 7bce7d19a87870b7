package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutInput descreve a cobrança de um agendamento.
type CheckoutInput struct {
	BookingID     uuid.UUID
	Title         string
	Amount        decimal.Decimal
	Currency      string
	CustomerEmail string
	CustomerName  string
	SuccessURL    string
	FailureURL    string
	PendingURL    string
	WebhookURL    string
}

type Checkout struct {
	PreferenceID string
	URL          string
}

// Info é o estado de um pagamento consultado no provedor.
type Info struct {
	ProviderPaymentID string
	Status            string // status cru do provedor
	BookingID         uuid.UUID
}

type Gateway interface {
	Provider() string
	CreateCheckout(ctx context.Context, in CheckoutInput) (Checkout, error)
	GetPayment(ctx context.Context, providerPaymentID string) (Info, error)
}
