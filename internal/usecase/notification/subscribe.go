package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const (
	StatusSubscribed        = "subscribed"
	StatusReactivated       = "reactivated"
	StatusAlreadySubscribed = "already_subscribed"
)

type Subscribe struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubscribe(repo domain.Repository, audit *audit.Dispatcher) *Subscribe {
	return &Subscribe{repo: repo, audit: audit}
}

func (uc *Subscribe) Execute(
	ctx context.Context,
	barberID uuid.UUID,
	email string,
) (string, error) {

	if _, err := uc.repo.GetBarberByID(ctx, barberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
		return "", err
	}

	email = validators.NormalizeEmail(email)

	sub, err := uc.repo.GetSubscription(ctx, barberID, email)
	switch {
	case err == nil:
		if sub.Active {
			return StatusAlreadySubscribed, nil
		}
		sub.Active = true
		if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
			return "", err
		}
		uc.dispatch(barberID, sub.ID, StatusReactivated)
		return StatusReactivated, nil

	case !errors.Is(err, domain.ErrNotFound):
		return "", err
	}

	sub = &models.NotificationSubscription{
		BarberID:        barberID,
		SubscriberEmail: email,
		Active:          true,
	}
	if err := uc.repo.CreateSubscription(ctx, sub); err != nil {
		// inscrição concorrente do mesmo e-mail
		if httperr.IsUniqueViolation(err) || httperr.IsBusiness(err, "subscription_exists") {
			return StatusAlreadySubscribed, nil
		}
		return "", err
	}

	uc.dispatch(barberID, sub.ID, StatusSubscribed)
	return StatusSubscribed, nil
}

func (uc *Subscribe) dispatch(barberID, subID uuid.UUID, action string) {
	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		Action:   "subscription_" + action,
		Entity:   "notification_subscription",
		EntityID: &subID,
	})
}
