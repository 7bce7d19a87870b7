package booking

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func startsOf(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestFreeSlots(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)

	w, err := WindowOf(models.Availability{Date: "2026-06-01", StartTime: "09:00", EndTime: "12:00"}, loc)
	require.NoError(t, err)

	at := func(h, m int) time.Time { return time.Date(2026, 6, 1, h, m, 0, 0, loc) }
	past := at(0, 0)

	t.Run("empty day", func(t *testing.T) {
		got := FreeSlots([]Window{w}, nil, 45*time.Minute, past)
		want := []string{"09:00", "09:45", "10:30"}
		if diff := cmp.Diff(want, startsOf(got)); diff != "" {
			t.Errorf("slots mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, "09:45", got[0].End)
		assert.True(t, got[0].StartsAt.Equal(at(9, 0)))
	})

	t.Run("busy slot removed", func(t *testing.T) {
		busy := BusyOf([]models.Booking{
			{StartsAt: at(9, 30), EndsAt: at(10, 0), Status: string(StatusBooked)},
			{StartsAt: at(11, 0), EndsAt: at(11, 30), Status: string(StatusCancelled)},
		})
		got := FreeSlots([]Window{w}, busy, 30*time.Minute, past)
		want := []string{"09:00", "10:00", "10:30", "11:00", "11:30"}
		if diff := cmp.Diff(want, startsOf(got)); diff != "" {
			t.Errorf("slots mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("slots before now are dropped", func(t *testing.T) {
		got := FreeSlots([]Window{w}, nil, time.Hour, at(9, 0))
		assert.Equal(t, []string{"10:00", "11:00"}, startsOf(got))
	})

	t.Run("zero duration", func(t *testing.T) {
		assert.Empty(t, FreeSlots([]Window{w}, nil, 0, past))
	})
}

func TestWindowOf_Invalid(t *testing.T) {
	_, err := WindowOf(models.Availability{Date: "2026-13-40", StartTime: "09:00", EndTime: "10:00"}, time.UTC)
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	start := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/06/2026", FormatDate(start, loc))
	assert.Equal(t, "09:00 - 09:30", FormatTimeSlot(start, start.Add(30*time.Minute), loc))
}

func TestToken(t *testing.T) {
	a, err := NewCancellationToken()
	require.NoError(t, err)
	b, err := NewCancellationToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.True(t, TokenMatches(a, a))
	assert.False(t, TokenMatches(a, b))
	assert.False(t, TokenMatches("", ""))
}
