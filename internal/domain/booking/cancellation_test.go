package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestCanCancel_Boundary(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"exactly 24h", now.Add(24 * time.Hour), true},
		{"24h01m", now.Add(24*time.Hour + time.Minute), true},
		{"23h59m", now.Add(23*time.Hour + 59*time.Minute), false},
		{"one nanosecond short", now.Add(24*time.Hour - time.Nanosecond), false},
		{"already started", now.Add(-time.Hour), false},
		{"far future", now.Add(30 * 24 * time.Hour), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanCancel(tc.start, now))
		})
	}
}

func TestCanCancel_IgnoresZone(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour).In(sp)

	assert.True(t, CanCancel(start, now.In(sp)))
	assert.True(t, CanCancel(start, now))
}

func TestCanCancel_MatchesDifference(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for m := -120; m <= 3000; m += 7 {
		start := now.Add(time.Duration(m) * time.Minute)
		assert.Equal(t, start.Sub(now) >= 24*time.Hour, CanCancel(start, now), "offset %dm", m)
	}
}

func newBooked(start time.Time) *models.Booking {
	return &models.Booking{
		StartsAt:          start,
		EndsAt:            start.Add(30 * time.Minute),
		Status:            string(StatusBooked),
		CancellationToken: "tok-123",
	}
}

func TestCustomerCancel(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success sets cancelled_at", func(t *testing.T) {
		b := newBooked(now.Add(48 * time.Hour))
		require.NoError(t, CustomerCancel(b, "tok-123", now))
		assert.Equal(t, string(StatusCancelled), b.Status)
		require.NotNil(t, b.CancelledAt)
		assert.True(t, b.CancelledAt.Equal(now))
	})

	t.Run("second cancel reports already cancelled", func(t *testing.T) {
		b := newBooked(now.Add(48 * time.Hour))
		require.NoError(t, CustomerCancel(b, "tok-123", now))
		err := CustomerCancel(b, "tok-123", now)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyCancelled))
	})

	t.Run("missing token", func(t *testing.T) {
		b := newBooked(now.Add(48 * time.Hour))
		err := CustomerCancel(b, "", now)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeTokenRequired))
	})

	t.Run("wrong token fails regardless of timing", func(t *testing.T) {
		for _, offset := range []time.Duration{time.Hour, 48 * time.Hour, 400 * time.Hour} {
			b := newBooked(now.Add(offset))
			err := CustomerCancel(b, "tok-999", now)
			assert.True(t, httperr.IsBusiness(err, httperr.CodeBookingNotFound))
			assert.Equal(t, string(StatusBooked), b.Status)
		}
	})

	t.Run("inside 24h window", func(t *testing.T) {
		b := newBooked(now.Add(23*time.Hour + 59*time.Minute))
		err := CustomerCancel(b, "tok-123", now)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeCancellationWindowPassed))
		assert.Nil(t, b.CancelledAt)
	})

	t.Run("completed booking", func(t *testing.T) {
		b := newBooked(now.Add(48 * time.Hour))
		b.Status = string(StatusCompleted)
		err := CustomerCancel(b, "tok-123", now)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})
}

func TestApply(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	b := newBooked(now.Add(-time.Hour))
	require.NoError(t, Apply(b, StatusCompleted, now))
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)

	err := Apply(b, StatusNoShow, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	b2 := newBooked(now)
	require.NoError(t, Apply(b2, StatusNoShow, now))
	assert.Equal(t, string(StatusNoShow), b2.Status)

	b3 := newBooked(now)
	assert.True(t, httperr.IsBusiness(Apply(b3, StatusBooked, now), httperr.CodeInvalidState))
	assert.True(t, httperr.IsBusiness(Apply(b3, Status("archived"), now), httperr.CodeInvalidState))
}
