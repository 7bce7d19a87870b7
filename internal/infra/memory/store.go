package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Store guarda tudo em memória. Usado no modo demo e nos testes.
// A checagem de sobreposição em CreateBooking roda sob o mesmo lock
// da inserção, fazendo o papel da constraint do Postgres.
type Store struct {
	mu sync.RWMutex

	barbers       map[uuid.UUID]models.Barber
	services      map[uuid.UUID]models.Service
	availability  map[uuid.UUID]models.Availability
	bookings      map[uuid.UUID]models.Booking
	subscriptions map[uuid.UUID]models.NotificationSubscription
	payments      map[uuid.UUID]models.Payment // por booking_id
	gallery       map[uuid.UUID]models.GalleryImage
}

func NewStore() *Store {
	return &Store{
		barbers:       map[uuid.UUID]models.Barber{},
		services:      map[uuid.UUID]models.Service{},
		availability:  map[uuid.UUID]models.Availability{},
		bookings:      map[uuid.UUID]models.Booking{},
		subscriptions: map[uuid.UUID]models.NotificationSubscription{},
		payments:      map[uuid.UUID]models.Payment{},
		gallery:       map[uuid.UUID]models.GalleryImage{},
	}
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

// ======================================================
// SEED
// ======================================================

func (s *Store) AddBarber(b models.Barber) models.Barber {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = newID(b.ID)
	s.barbers[b.ID] = b
	return b
}

func (s *Store) AddService(sv models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv.ID = newID(sv.ID)
	s.services[sv.ID] = sv
	return sv
}

func (s *Store) AddAvailability(a models.Availability) models.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = newID(a.ID)
	s.availability[a.ID] = a
	return a
}

func (s *Store) AddGalleryImage(g models.GalleryImage) models.GalleryImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = newID(g.ID)
	s.gallery[g.ID] = g
	return g
}

func (s *Store) ListGalleryImages(_ context.Context, barberID uuid.UUID) ([]models.GalleryImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.GalleryImage{}
	for _, g := range s.gallery {
		if g.BarberID == barberID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// CountSubscriptions conta todas as linhas (ativas ou não) do barbeiro.
func (s *Store) CountSubscriptions(barberID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, sub := range s.subscriptions {
		if sub.BarberID == barberID {
			n++
		}
	}
	return n
}

// ======================================================
// Barber
// ======================================================

func (s *Store) GetBarberByID(_ context.Context, id uuid.UUID) (*models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.barbers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *Store) GetBarberBySlug(_ context.Context, slug string) (*models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.barbers {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) ListBarbers(_ context.Context) ([]models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Barber, 0, len(s.barbers))
	for _, b := range s.barbers {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShopName < out[j].ShopName })
	return out, nil
}

// ======================================================
// Service
// ======================================================

func (s *Store) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sv, ok := s.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sv, nil
}

func (s *Store) ListServices(_ context.Context, barberID uuid.UUID, onlyActive bool) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Service{}
	for _, sv := range s.services {
		if sv.BarberID != barberID || (onlyActive && !sv.Active) {
			continue
		}
		out = append(out, sv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// ======================================================
// Availability
// ======================================================

func (s *Store) ListAvailability(_ context.Context, barberID uuid.UUID, fromDate, toDate string) ([]models.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Availability{}
	for _, a := range s.availability {
		if a.BarberID == barberID && a.Date >= fromDate && a.Date <= toDate {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (s *Store) ReplaceAvailability(_ context.Context, barberID uuid.UUID, fromDate string, rows []models.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, a := range s.availability {
		if a.BarberID == barberID && a.Date >= fromDate {
			delete(s.availability, id)
		}
	}
	for _, a := range rows {
		a.ID = newID(a.ID)
		s.availability[a.ID] = a
	}
	return nil
}

func (s *Store) DeleteAvailability(_ context.Context, barberID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.availability[id]
	if !ok || a.BarberID != barberID {
		return domain.ErrNotFound
	}
	delete(s.availability, id)
	return nil
}

// ======================================================
// Booking
// ======================================================

func (s *Store) CreateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.Status != string(domain.StatusCancelled) && s.overlapLocked(b.BarberID, b.StartsAt, b.EndsAt) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	now := time.Now().UTC()
	b.ID = newID(b.ID)
	b.CreatedAt = now
	b.UpdatedAt = now

	stored := *b
	stored.Barber = nil
	stored.Service = nil
	s.bookings[b.ID] = stored
	return nil
}

func (s *Store) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if sv, ok := s.services[b.ServiceID]; ok {
		b.Service = &sv
	}
	if br, ok := s.barbers[b.BarberID]; ok {
		b.Barber = &br
	}
	return &b, nil
}

func (s *Store) TransitionBooking(_ context.Context, b *models.Booking, from domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.bookings[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != string(from) {
		return domain.ErrStatusChanged
	}

	stored.Status = b.Status
	stored.CancelledAt = b.CancelledAt
	stored.CompletedAt = b.CompletedAt
	stored.UpdatedAt = time.Now().UTC()
	s.bookings[b.ID] = stored

	b.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *Store) UpdateBookingPayment(_ context.Context, id uuid.UUID, status domain.PaymentStatus, intentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.bookings[id]
	if !ok {
		return domain.ErrNotFound
	}
	if status != "" {
		stored.PaymentStatus = string(status)
	}
	if intentID != "" {
		stored.PaymentIntentID = intentID
	}
	stored.UpdatedAt = time.Now().UTC()
	s.bookings[id] = stored
	return nil
}

func (s *Store) HasOverlap(_ context.Context, barberID uuid.UUID, start, end time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlapLocked(barberID, start, end), nil
}

func (s *Store) overlapLocked(barberID uuid.UUID, start, end time.Time) bool {
	for _, b := range s.bookings {
		if b.BarberID != barberID || b.Status == string(domain.StatusCancelled) {
			continue
		}
		if b.StartsAt.Before(end) && b.EndsAt.After(start) {
			return true
		}
	}
	return false
}

func (s *Store) ListActiveBookings(_ context.Context, barberID uuid.UUID, from, to time.Time) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.BarberID != barberID || b.Status == string(domain.StatusCancelled) {
			continue
		}
		if b.StartsAt.Before(to) && b.EndsAt.After(from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (s *Store) ListBookings(_ context.Context, filter domain.ListFilter) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.BarberID != filter.BarberID {
			continue
		}
		if filter.From != nil && b.StartsAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartsAt.Before(*filter.To) {
			continue
		}
		if filter.Status != "" && b.Status != string(filter.Status) {
			continue
		}
		if sv, ok := s.services[b.ServiceID]; ok {
			b.Service = &sv
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

// ======================================================
// Subscription
// ======================================================

func (s *Store) GetSubscription(_ context.Context, barberID uuid.UUID, email string) (*models.NotificationSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subscriptions {
		if sub.BarberID == barberID && sub.SubscriberEmail == email {
			return &sub, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) CreateSubscription(_ context.Context, sub *models.NotificationSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.subscriptions {
		if existing.BarberID == sub.BarberID && existing.SubscriberEmail == sub.SubscriberEmail {
			return httperr.ErrBusiness("subscription_exists")
		}
	}

	sub.ID = newID(sub.ID)
	sub.CreatedAt = time.Now().UTC()
	sub.UpdatedAt = sub.CreatedAt
	s.subscriptions[sub.ID] = *sub
	return nil
}

func (s *Store) UpdateSubscription(_ context.Context, sub *models.NotificationSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscriptions[sub.ID]; !ok {
		return domain.ErrNotFound
	}
	sub.UpdatedAt = time.Now().UTC()
	s.subscriptions[sub.ID] = *sub
	return nil
}

func (s *Store) ListActiveSubscribers(_ context.Context, barberID uuid.UUID) ([]models.NotificationSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.NotificationSubscription{}
	for _, sub := range s.subscriptions {
		if sub.BarberID == barberID && sub.Active {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubscriberEmail < out[j].SubscriberEmail })
	return out, nil
}

// ======================================================
// Payment
// ======================================================

func (s *Store) GetPaymentByBooking(_ context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[bookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *Store) SavePayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.payments[p.BookingID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = newID(p.ID)
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = time.Now().UTC()
	s.payments[p.BookingID] = *p
	return nil
}

var _ domain.Repository = (*Store)(nil)
