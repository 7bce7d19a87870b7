package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CheckoutStarter cria o link de pagamento online de um agendamento.
type CheckoutStarter interface {
	Start(ctx context.Context, b *models.Booking) (string, error)
}

// Deps agrupa as dependências comuns dos casos de uso de agendamento.
type Deps struct {
	Repo     domain.Repository
	Audit    *audit.Dispatcher
	Cache    cache.AvailabilityCache
	Notifier domain.Notifier
	Clock    clock.Clock
}

func loadBooking(ctx context.Context, repo domain.Repository, id uuid.UUID) (*models.Booking, error) {
	b, err := repo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeBookingNotFound)
		}
		return nil, err
	}
	return b, nil
}

// saveTransition grava a mudança de status de b, que saiu de from. Se
// outro pedido mudou o status antes, recarrega e devolve o erro da
// transição a partir do status atual.
func saveTransition(ctx context.Context, repo domain.Repository, b *models.Booking, from domain.Status) error {
	err := repo.TransitionBooking(ctx, b, from)
	if !errors.Is(err, domain.ErrStatusChanged) {
		return err
	}

	current, err := loadBooking(ctx, repo, b.ID)
	if err != nil {
		return err
	}
	if err := domain.CheckTransition(domain.Status(current.Status), domain.Status(b.Status)); err != nil {
		return err
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}
