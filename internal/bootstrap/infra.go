package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/mailer"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/payment"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		NewPersistence,
		func(p Persistence) domain.Repository { return p.Repo },
		clock.NewRealClock,
		NewCache,
		NewAudit,
		NewPublisher,
		NewSender,
		NewGateway,
		NewImageStore,
		NewRateLimiter,
	),
)

// ======================================================
// PERSISTÊNCIA
// ======================================================

// Persistence tem DB nil e Store preenchido no modo demo.
type Persistence struct {
	Repo  domain.Repository
	DB    *gorm.DB
	Store *memory.Store
}

func NewPersistence(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Persistence, error) {
	if cfg.DemoMode() {
		logger.Warn("DATABASE_URL not set, running in demo mode with in-memory data")
		store := memory.NewStore()
		return Persistence{Repo: store, Store: store}, nil
	}

	db, err := dbpkg.NewDB(cfg.DB, gin.Mode() == gin.DebugMode)
	if err != nil {
		return Persistence{}, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return Persistence{Repo: infraRepo.NewBookingGormRepository(db), DB: db}, nil
}

// ======================================================
// INTEGRAÇÕES OPCIONAIS
// ======================================================

func NewCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) cache.AvailabilityCache {
	if cfg.Redis.URL == "" {
		return cache.Noop{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Warn("redis unavailable, availability cache disabled", "error", err)
		return cache.Noop{}
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error { return client.Close() },
	})
	return cache.NewRedisCache(client, cfg.Redis.TTL, logger)
}

func NewAudit(lc fx.Lifecycle, p Persistence, logger *slog.Logger) *audit.Dispatcher {
	var sink audit.Sink = audit.SlogSink{Logger: logger}
	if p.DB != nil {
		sink = audit.New(p.DB)
	}

	d := audit.NewDispatcher(sink)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			d.Close()
			return nil
		},
	})
	return d
}

func NewPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) events.Publisher {
	if cfg.AMQP.URL == "" {
		return events.Noop{}
	}

	p, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
	if err != nil {
		logger.Warn("amqp unavailable, domain events disabled", "error", err)
		return events.Noop{}
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			p.Close()
			return nil
		},
	})
	return p
}

func NewSender(cfg config.Config, logger *slog.Logger) mailer.Sender {
	if cfg.Mail.ResendAPIKey == "" {
		logger.Warn("RESEND_API_KEY not set, emails will only be logged")
		return mailer.LogSender{Logger: logger}
	}
	return mailer.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From)
}

func NewGateway(cfg config.Config, logger *slog.Logger) payment.Gateway {
	if cfg.MercadoPago.AccessToken == "" {
		logger.Warn("MP_ACCESS_TOKEN not set, online payments disabled")
		return payment.Unavailable{}
	}

	gw, err := payment.NewMercadoPago(cfg.MercadoPago.AccessToken)
	if err != nil {
		logger.Warn("mercadopago unavailable, online payments disabled", "error", err)
		return payment.Unavailable{}
	}
	return gw
}

// NewImageStore devolve nil sem bucket configurado.
func NewImageStore(cfg config.Config) storage.ImageStore {
	if cfg.Storage.Bucket == "" {
		return nil
	}
	return storage.NewS3Store(cfg.Storage)
}

func NewRateLimiter(lc fx.Lifecycle, cfg config.Config) *middleware.RateLimiter {
	rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go rl.Cleanup(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
	return rl
}
