//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

type GormSuite struct {
	suite.Suite

	container testcontainers.Container
	db        *gorm.DB
	repo      *BookingGormRepository

	barber  models.Barber
	service models.Service
}

func TestGormSuite(t *testing.T) {
	suite.Run(t, new(GormSuite))
}

func (s *GormSuite) SetupSuite() {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       "booking",
		},
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = c

	host, err := c.Host(ctx)
	s.Require().NoError(err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	s.Require().NoError(err)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/booking?sslmode=disable",
		testUser, testPassword, host, port.Port())

	db, err := dbpkg.NewDB(config.DBConfig{
		URL:             dsn,
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	}, false)
	s.Require().NoError(err)

	// segunda chamada prova que a migração é idempotente
	s.Require().NoError(dbpkg.Migrate(db))

	s.db = db
	s.repo = NewBookingGormRepository(db)
}

func (s *GormSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *GormSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(
		`TRUNCATE bookings, payments, notification_subscriptions, availabilities, services, gallery_images, barbers CASCADE`,
	).Error)

	s.barber = models.Barber{
		Slug:     "luccifadez-" + uuid.NewString()[:8],
		ShopName: "Luccifadez",
		Timezone: "America/Sao_Paulo",
	}
	s.Require().NoError(s.db.Create(&s.barber).Error)

	s.service = models.Service{
		BarberID:        s.barber.ID,
		Title:           "Corte",
		DurationMinutes: 30,
		Price:           decimal.RequireFromString("50.00"),
		Active:          true,
	}
	s.Require().NoError(s.db.Create(&s.service).Error)
}

func (s *GormSuite) booking(start time.Time) *models.Booking {
	return &models.Booking{
		BarberID:          s.barber.ID,
		ServiceID:         s.service.ID,
		StartsAt:          start,
		EndsAt:            start.Add(30 * time.Minute),
		CustomerName:      "Ana",
		CustomerEmail:     "ana@example.com",
		CustomerPhone:     "11999990000",
		LocationType:      string(domain.LocationInShop),
		PaymentMethod:     string(domain.PaymentOnSite),
		PaymentStatus:     string(domain.PaymentPending),
		Status:            string(domain.StatusBooked),
		CancellationToken: uuid.NewString(),
	}
}

func (s *GormSuite) TestOverlapRejectedByConstraint() {
	ctx := context.Background()
	start := time.Date(2030, 1, 10, 13, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.CreateBooking(ctx, s.booking(start)))

	err := s.repo.CreateBooking(ctx, s.booking(start.Add(15*time.Minute)))
	s.True(httperr.IsBusiness(err, httperr.CodeSlotUnavailable), "got %v", err)

	// encostado no fim não conflita
	s.NoError(s.repo.CreateBooking(ctx, s.booking(start.Add(30*time.Minute))))
}

func (s *GormSuite) TestCancelledBookingFreesSlot() {
	ctx := context.Background()
	start := time.Date(2030, 1, 11, 13, 0, 0, 0, time.UTC)

	first := s.booking(start)
	s.Require().NoError(s.repo.CreateBooking(ctx, first))

	s.Require().NoError(domain.Cancel(first, time.Now()))
	s.Require().NoError(s.repo.TransitionBooking(ctx, first, domain.StatusBooked))

	overlap, err := s.repo.HasOverlap(ctx, s.barber.ID, start, start.Add(30*time.Minute))
	s.Require().NoError(err)
	s.False(overlap)

	s.NoError(s.repo.CreateBooking(ctx, s.booking(start)))
}

func (s *GormSuite) TestTransitionOnlyFromExpectedStatus() {
	ctx := context.Background()
	b := s.booking(time.Date(2030, 1, 12, 13, 0, 0, 0, time.UTC))
	s.Require().NoError(s.repo.CreateBooking(ctx, b))

	cancelled := *b
	s.Require().NoError(domain.Cancel(&cancelled, time.Now()))
	s.Require().NoError(s.repo.TransitionBooking(ctx, &cancelled, domain.StatusBooked))

	// segunda cópia carregada antes do cancelamento
	completed := *b
	s.Require().NoError(domain.Complete(&completed, time.Now()))
	err := s.repo.TransitionBooking(ctx, &completed, domain.StatusBooked)
	s.ErrorIs(err, domain.ErrStatusChanged)

	s.Require().NoError(s.repo.UpdateBookingPayment(ctx, b.ID, domain.PaymentCompleted, "pref-1"))

	stored, err := s.repo.GetBooking(ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(string(domain.StatusCancelled), stored.Status)
	s.NotNil(stored.CancelledAt)
	s.Nil(stored.CompletedAt)
	s.Equal(string(domain.PaymentCompleted), stored.PaymentStatus)
	s.Equal("pref-1", stored.PaymentIntentID)

	s.ErrorIs(s.repo.UpdateBookingPayment(ctx, uuid.New(), domain.PaymentFailed, ""), domain.ErrNotFound)
}

func (s *GormSuite) TestSubscriptionUniqueness() {
	ctx := context.Background()

	sub := &models.NotificationSubscription{BarberID: s.barber.ID, SubscriberEmail: "joao@example.com", Active: true}
	s.Require().NoError(s.repo.CreateSubscription(ctx, sub))

	dup := &models.NotificationSubscription{BarberID: s.barber.ID, SubscriberEmail: "joao@example.com", Active: true}
	err := s.repo.CreateSubscription(ctx, dup)
	require.Error(s.T(), err)
}
