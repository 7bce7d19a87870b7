package availability

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetSlots struct {
	repo  domain.Repository
	cache cache.AvailabilityCache
	clock clock.Clock
}

func NewGetSlots(
	repo domain.Repository,
	cache cache.AvailabilityCache,
	clock clock.Clock,
) *GetSlots {
	return &GetSlots{repo: repo, cache: cache, clock: clock}
}

func (uc *GetSlots) Execute(
	ctx context.Context,
	barberID, serviceID uuid.UUID,
	date string,
) ([]domain.TimeSlot, error) {

	barber, svc, err := resolve(ctx, uc.repo, barberID, serviceID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(barber.Timezone)
	if _, err := timezone.ParseDate(date, loc); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}

	now := uc.clock.Now()
	field := "slots:" + svc.ID.String() + ":" + date

	if raw, ok := uc.cache.Get(ctx, barber.ID, field); ok {
		var cached []domain.TimeSlot
		if json.Unmarshal(raw, &cached) == nil {
			return futureOnly(cached, now), nil
		}
	}

	slots, err := computeSlots(ctx, uc.repo, barber, svc, date, now)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(slots); err == nil {
		uc.cache.Set(ctx, barber.ID, field, raw)
	}
	return slots, nil
}
