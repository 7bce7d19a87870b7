package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/demo"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/mailer"
	"github.com/BruksfildServices01/barber-booking/internal/payment"
	ucAvailability "github.com/BruksfildServices01/barber-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucNotification "github.com/BruksfildServices01/barber-booking/internal/usecase/notification"
	ucPayment "github.com/BruksfildServices01/barber-booking/internal/usecase/payment"
)

const (
	notificationWorkers = 2
	notificationBuffer  = 256
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		// notificações
		NewEmails,
		NewNotificationDispatcher,
		func(d *ucNotification.Dispatcher) domain.Notifier { return d },
		ucNotification.NewSubscribe,

		// pagamentos
		NewStartCheckout,
		func(s *ucPayment.StartCheckout) ucBooking.CheckoutStarter { return s },
		NewHandleWebhook,

		// disponibilidade
		ucAvailability.NewGetSlots,
		ucAvailability.NewGetDates,
		NewGenerateWeekly,
		ucAvailability.NewManageWindows,

		// agendamentos
		NewBookingDeps,
		ucBooking.NewCreateBooking,
		ucBooking.NewCancelBooking,
		ucBooking.NewGetBooking,
		ucBooking.NewUpdateBookingStatus,
		ucBooking.NewListBookings,
		ucBooking.NewExportBookings,
	),
	fx.Invoke(SeedDemo),
)

func NewEmails(repo domain.Repository, sender mailer.Sender, cfg config.Config, logger *slog.Logger) *ucNotification.Emails {
	return ucNotification.NewEmails(repo, sender, cfg.App.BaseURL, logger)
}

func NewNotificationDispatcher(
	lc fx.Lifecycle,
	emails *ucNotification.Emails,
	publisher events.Publisher,
	logger *slog.Logger,
) *ucNotification.Dispatcher {
	d := ucNotification.NewDispatcher(emails, publisher, logger, notificationWorkers, notificationBuffer)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			d.Close()
			return nil
		},
	})
	return d
}

func NewStartCheckout(
	repo domain.Repository,
	gateway payment.Gateway,
	auditor *audit.Dispatcher,
	cfg config.Config,
) *ucPayment.StartCheckout {
	return ucPayment.NewStartCheckout(
		repo,
		gateway,
		auditor,
		cfg.MercadoPago.Currency,
		cfg.App.BaseURL,
		cfg.App.APIURL,
	)
}

func NewHandleWebhook(
	repo domain.Repository,
	gateway payment.Gateway,
	notifier domain.Notifier,
	auditor *audit.Dispatcher,
	cfg config.Config,
) *ucPayment.HandleWebhook {
	return ucPayment.NewHandleWebhook(repo, gateway, notifier, auditor, cfg.MercadoPago.WebhookSecret)
}

func NewGenerateWeekly(
	repo domain.Repository,
	availabilityCache cache.AvailabilityCache,
	auditor *audit.Dispatcher,
	clk clock.Clock,
	cfg config.Config,
) *ucAvailability.GenerateWeekly {
	return ucAvailability.NewGenerateWeekly(repo, availabilityCache, auditor, clk, cfg.App.TemplateDays)
}

func NewBookingDeps(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	availabilityCache cache.AvailabilityCache,
	notifier domain.Notifier,
	clk clock.Clock,
) ucBooking.Deps {
	return ucBooking.Deps{
		Repo:     repo,
		Audit:    auditor,
		Cache:    availabilityCache,
		Notifier: notifier,
		Clock:    clk,
	}
}

// SeedDemo carrega os dados de exemplo quando não há banco.
func SeedDemo(p Persistence, weekly *ucAvailability.GenerateWeekly, logger *slog.Logger) error {
	if p.Store == nil {
		return nil
	}
	if err := demo.Load(context.Background(), p.Store, weekly); err != nil {
		return err
	}
	logger.Info("demo data loaded")
	return nil
}
