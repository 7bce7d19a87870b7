package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

func newEmails(f *testutil.Fixture, sender *testutil.RecordingSender) *Emails {
	return NewEmails(f.Store, sender, "https://app.test/", f.Logger)
}

func subscribe(t *testing.T, f *testutil.Fixture, email string, active bool) {
	t.Helper()
	require.NoError(t, f.Store.CreateSubscription(context.Background(), &models.NotificationSubscription{
		BarberID:        f.Barber.ID,
		SubscriberEmail: email,
		Active:          active,
	}))
}

func TestEmails_Confirmation(t *testing.T) {
	f := testutil.NewFixture(t)
	sender := &testutil.RecordingSender{}
	b := f.AddBooking(t, f.Local(1, 10, 0), domain.PaymentOnSite)

	require.NoError(t, newEmails(f, sender).SendConfirmation(context.Background(), b.ID))

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@example.com", sent[0].To)
	assert.Equal(t, "Agendamento confirmado - Luccifadez", sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "02/06/2026")
	assert.Contains(t, sent[0].HTML, "10:00 - 10:30")
	assert.Contains(t, sent[0].HTML, "R$ 50,00")
	assert.Contains(t, sent[0].HTML, "https://app.test/bookings/"+b.ID.String()+"/cancel?token="+b.CancellationToken)
}

func TestEmails_UnknownBooking(t *testing.T) {
	f := testutil.NewFixture(t)
	err := newEmails(f, &testutil.RecordingSender{}).SendCancellation(context.Background(), uuid.New())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBookingNotFound))
}

func TestEmails_NotifySlotFreed(t *testing.T) {
	f := testutil.NewFixture(t)
	sender := &testutil.RecordingSender{}
	b := f.AddBooking(t, f.Local(1, 10, 0), domain.PaymentOnSite)

	subscribe(t, f, "a@example.com", true)
	subscribe(t, f, "b@example.com", true)
	subscribe(t, f, "off@example.com", false)

	n, err := newEmails(f, sender).NotifySlotFreed(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, m := range sender.Sent() {
		assert.NotEqual(t, "off@example.com", m.To)
		assert.Contains(t, m.HTML, "https://app.test/barbers/luccifadez")
	}
}

func TestEmails_NotifySlotFreed_CountsOnlySuccesses(t *testing.T) {
	f := testutil.NewFixture(t)
	sender := &testutil.RecordingSender{Err: errors.New("smtp down")}
	b := f.AddBooking(t, f.Local(1, 10, 0), domain.PaymentOnSite)
	subscribe(t, f, "a@example.com", true)

	n, err := newEmails(f, sender).NotifySlotFreed(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, sender.Sent(), 1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, key string, payload any) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() {}

func TestDispatcher_RunsJobsAndDrains(t *testing.T) {
	f := testutil.NewFixture(t)
	sender := &testutil.RecordingSender{}
	pub := &mockPublisher{}
	b := f.AddBooking(t, f.Local(1, 10, 0), domain.PaymentOnSite)
	subscribe(t, f, "a@example.com", true)

	pub.On("Publish", mock.Anything, events.BookingCancelled, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.BookingID == b.ID && e.Type == events.BookingCancelled
	})).Return(errors.New("broker down")).Once()

	d := NewDispatcher(newEmails(f, sender), pub, f.Logger, 1, 10)
	d.BookingConfirmed(*b)
	d.BookingCancelled(*b)
	d.BookingEvent(events.BookingCancelled, *b)
	d.Close()

	subjects := []string{}
	for _, m := range sender.Sent() {
		subjects = append(subjects, m.Subject)
	}
	assert.Equal(t, []string{
		"Agendamento confirmado - Luccifadez",
		"Agendamento cancelado - Luccifadez",
		"Horário disponível - Luccifadez",
	}, subjects)
	// falha na publicação só gera log
	pub.AssertExpectations(t)

	assert.NotPanics(t, func() { d.BookingConfirmed(*b) })
}

func TestSubscribe(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	uc := NewSubscribe(f.Store, f.Audit)

	status, err := uc.Execute(ctx, f.Barber.ID, " Cliente@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, StatusSubscribed, status)

	status, err = uc.Execute(ctx, f.Barber.ID, "cliente@example.com")
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadySubscribed, status)

	sub, err := f.Store.GetSubscription(ctx, f.Barber.ID, "cliente@example.com")
	require.NoError(t, err)
	sub.Active = false
	require.NoError(t, f.Store.UpdateSubscription(ctx, sub))

	status, err = uc.Execute(ctx, f.Barber.ID, "cliente@example.com")
	require.NoError(t, err)
	assert.Equal(t, StatusReactivated, status)

	assert.Equal(t, 1, f.Store.CountSubscriptions(f.Barber.ID))

	_, err = uc.Execute(ctx, uuid.New(), "x@example.com")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberNotFound))
}
