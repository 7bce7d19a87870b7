// Package testutil monta o cenário padrão dos testes de casos de uso:
// loja em memória, relógio fixo e dublês de notificação, e-mail e pagamento.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/mailer"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/payment"
)

// Now é segunda-feira, 09:00 em São Paulo.
var Now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

const Timezone = "America/Sao_Paulo"

type Fixture struct {
	Store    *memory.Store
	Clock    *clock.MockClock
	Notifier *RecordingNotifier
	Audit    *audit.Dispatcher
	Logger   *slog.Logger

	Barber   models.Barber
	Haircut  models.Service // 30 min, ativo
	Inactive models.Service
}

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewFixture cria um barbeiro com atendimento 09:00-18:00 nos próximos
// sete dias.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	logger := DiscardLogger()
	store := memory.NewStore()

	barber := store.AddBarber(models.Barber{
		Slug:          "luccifadez",
		ShopName:      "Luccifadez",
		Address:       "Rua Augusta, 100",
		City:          "São Paulo",
		Timezone:      Timezone,
		TravelEnabled: true,
	})

	haircut := store.AddService(models.Service{
		BarberID:        barber.ID,
		Title:           "Corte",
		DurationMinutes: 30,
		Price:           decimal.RequireFromString("50.00"),
		Active:          true,
	})
	inactive := store.AddService(models.Service{
		BarberID:        barber.ID,
		Title:           "Pigmentação",
		DurationMinutes: 60,
		Price:           decimal.RequireFromString("80.00"),
		Active:          false,
	})

	f := &Fixture{
		Store:    store,
		Clock:    clock.NewMockClock(Now),
		Notifier: &RecordingNotifier{},
		Audit:    audit.NewDispatcher(audit.SlogSink{Logger: logger}),
		Logger:   logger,
		Barber:   barber,
		Haircut:  haircut,
		Inactive: inactive,
	}
	t.Cleanup(f.Audit.Close)

	for i := 0; i < 7; i++ {
		f.AddWindow(i, "09:00", "18:00")
	}
	return f
}

// Local devolve o horário hh:mm do dia Now+offsetDays em São Paulo.
func (f *Fixture) Local(offsetDays, hour, minute int) time.Time {
	loc, _ := time.LoadLocation(Timezone)
	d := Now.In(loc).AddDate(0, 0, offsetDays)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc)
}

func (f *Fixture) Date(offsetDays int) string {
	return f.Local(offsetDays, 0, 0).Format(domain.DateLayout)
}

func (f *Fixture) AddWindow(offsetDays int, start, end string) models.Availability {
	return f.Store.AddAvailability(models.Availability{
		BarberID:  f.Barber.ID,
		Date:      f.Date(offsetDays),
		StartTime: start,
		EndTime:   end,
	})
}

// AddBooking grava um agendamento direto na loja.
func (f *Fixture) AddBooking(t *testing.T, start time.Time, method domain.PaymentMethod) *models.Booking {
	t.Helper()

	b := &models.Booking{
		BarberID:          f.Barber.ID,
		ServiceID:         f.Haircut.ID,
		StartsAt:          start.UTC(),
		EndsAt:            start.UTC().Add(f.Haircut.Duration()),
		CustomerName:      "Ana",
		CustomerEmail:     "ana@example.com",
		CustomerPhone:     "11999990000",
		LocationType:      string(domain.LocationInShop),
		PaymentMethod:     string(method),
		PaymentStatus:     string(domain.PaymentPending),
		Status:            string(domain.StatusBooked),
		CancellationToken: "tok-" + uuid.NewString(),
	}
	if err := f.Store.CreateBooking(context.Background(), b); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}

// ======================================================
// NOTIFIER
// ======================================================

type RecordingNotifier struct {
	mu        sync.Mutex
	Confirmed []uuid.UUID
	Cancelled []uuid.UUID
	Events    []string
}

func (n *RecordingNotifier) BookingConfirmed(b models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Confirmed = append(n.Confirmed, b.ID)
}

func (n *RecordingNotifier) BookingCancelled(b models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Cancelled = append(n.Cancelled, b.ID)
}

func (n *RecordingNotifier) BookingEvent(eventType string, _ models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Events = append(n.Events, eventType)
}

// ======================================================
// MAILER
// ======================================================

type RecordingSender struct {
	mu       sync.Mutex
	Messages []mailer.Message
	Err      error
}

func (s *RecordingSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
	return s.Err
}

func (s *RecordingSender) Sent() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mailer.Message(nil), s.Messages...)
}

// ======================================================
// PAYMENT GATEWAY
// ======================================================

type FakeGateway struct {
	mu       sync.Mutex
	Inputs   []payment.CheckoutInput
	Payments map[string]payment.Info
	Err      error
}

func (g *FakeGateway) Provider() string { return "fake" }

func (g *FakeGateway) CreateCheckout(_ context.Context, in payment.CheckoutInput) (payment.Checkout, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return payment.Checkout{}, g.Err
	}
	g.Inputs = append(g.Inputs, in)
	return payment.Checkout{
		PreferenceID: "pref-" + in.BookingID.String(),
		URL:          "https://pay.test/checkout/" + in.BookingID.String(),
	}, nil
}

func (g *FakeGateway) GetPayment(_ context.Context, id string) (payment.Info, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	info, ok := g.Payments[id]
	if !ok {
		return payment.Info{}, payment.ErrUnavailable
	}
	return info, nil
}

var (
	_ domain.Notifier = (*RecordingNotifier)(nil)
	_ mailer.Sender   = (*RecordingSender)(nil)
	_ payment.Gateway = (*FakeGateway)(nil)
)
