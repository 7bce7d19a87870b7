package payment

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("online payments are not configured")

// Unavailable é usado quando não há credenciais do provedor. O agendamento
// online cai no fluxo de confirmação imediata.
type Unavailable struct{}

func (Unavailable) Provider() string { return "none" }

func (Unavailable) CreateCheckout(context.Context, CheckoutInput) (Checkout, error) {
	return Checkout{}, ErrUnavailable
}

func (Unavailable) GetPayment(context.Context, string) (Info, error) {
	return Info{}, ErrUnavailable
}
