package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestStore_CreateBooking_ConcurrentSameSlot(t *testing.T) {
	s := NewStore()
	barberID := uuid.New()
	start := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	var ok, conflict int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := &models.Booking{
				BarberID: barberID,
				StartsAt: start.Add(time.Duration(i%3) * 10 * time.Minute),
				EndsAt:   start.Add(30 * time.Minute),
				Status:   string(domain.StatusBooked),
			}
			err := s.CreateBooking(context.Background(), b)
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case httperr.IsBusiness(err, httperr.CodeSlotUnavailable):
				atomic.AddInt32(&conflict, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(19), conflict)
}

func TestStore_CancelledBookingFreesSlot(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	barberID := uuid.New()
	start := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	first := &models.Booking{BarberID: barberID, StartsAt: start, EndsAt: start.Add(time.Hour), Status: string(domain.StatusBooked)}
	require.NoError(t, s.CreateBooking(ctx, first))

	first.Status = string(domain.StatusCancelled)
	require.NoError(t, s.TransitionBooking(ctx, first, domain.StatusBooked))

	overlap, err := s.HasOverlap(ctx, barberID, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, overlap)

	second := &models.Booking{BarberID: barberID, StartsAt: start, EndsAt: start.Add(time.Hour), Status: string(domain.StatusBooked)}
	assert.NoError(t, s.CreateBooking(ctx, second))

	// outro barbeiro no mesmo horário não conflita
	other := &models.Booking{BarberID: uuid.New(), StartsAt: start, EndsAt: start.Add(time.Hour), Status: string(domain.StatusBooked)}
	assert.NoError(t, s.CreateBooking(ctx, other))
}

func TestStore_BackToBackIsNotOverlap(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	barberID := uuid.New()
	start := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateBooking(ctx, &models.Booking{BarberID: barberID, StartsAt: start, EndsAt: start.Add(time.Hour), Status: "booked"}))
	assert.NoError(t, s.CreateBooking(ctx, &models.Booking{BarberID: barberID, StartsAt: start.Add(time.Hour), EndsAt: start.Add(2 * time.Hour), Status: "booked"}))
}

func TestStore_ReplaceAvailability(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	barberID := uuid.New()

	s.AddAvailability(models.Availability{BarberID: barberID, Date: "2026-06-01", StartTime: "09:00", EndTime: "12:00"})
	s.AddAvailability(models.Availability{BarberID: barberID, Date: "2026-06-10", StartTime: "09:00", EndTime: "12:00"})

	require.NoError(t, s.ReplaceAvailability(ctx, barberID, "2026-06-05", []models.Availability{
		{BarberID: barberID, Date: "2026-06-06", StartTime: "10:00", EndTime: "18:00"},
	}))

	rows, err := s.ListAvailability(ctx, barberID, "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-06-01", rows[0].Date)
	assert.Equal(t, "2026-06-06", rows[1].Date)
}

func TestStore_SavePaymentUpserts(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	bookingID := uuid.New()

	require.NoError(t, s.SavePayment(ctx, &models.Payment{BookingID: bookingID, Status: "pending"}))
	first, err := s.GetPaymentByBooking(ctx, bookingID)
	require.NoError(t, err)

	require.NoError(t, s.SavePayment(ctx, &models.Payment{BookingID: bookingID, Status: "completed"}))
	second, err := s.GetPaymentByBooking(ctx, bookingID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "completed", second.Status)
}

func TestStore_NotFound(t *testing.T) {
	s := NewStore()
	_, err := s.GetBooking(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_TransitionBooking_StaleCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	start := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	b := &models.Booking{BarberID: uuid.New(), StartsAt: start, EndsAt: start.Add(time.Hour), Status: string(domain.StatusBooked), PaymentStatus: string(domain.PaymentPending)}
	require.NoError(t, s.CreateBooking(ctx, b))

	stale := *b
	cancelled := *b
	require.NoError(t, domain.Cancel(&cancelled, start))
	require.NoError(t, s.TransitionBooking(ctx, &cancelled, domain.StatusBooked))

	// pagamento grava só as próprias colunas
	require.NoError(t, s.UpdateBookingPayment(ctx, stale.ID, domain.PaymentCompleted, ""))

	require.NoError(t, domain.Complete(&stale, start))
	assert.ErrorIs(t, s.TransitionBooking(ctx, &stale, domain.StatusBooked), domain.ErrStatusChanged)

	got, err := s.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	assert.NotNil(t, got.CancelledAt)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, string(domain.PaymentCompleted), got.PaymentStatus)

	assert.ErrorIs(t, s.UpdateBookingPayment(ctx, uuid.New(), domain.PaymentFailed, ""), domain.ErrNotFound)
}
