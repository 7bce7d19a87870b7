package db

import (
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/errs"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Reservas não canceladas do mesmo barbeiro não podem se sobrepor.
// O intervalo é semiaberto: terminar às 10:00 e começar às 10:00 não conflita.
const noOverlapConstraint = `
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
    ) THEN
        ALTER TABLE bookings
            ADD CONSTRAINT bookings_no_overlap
            EXCLUDE USING gist (
                barber_id WITH =,
                tstzrange(starts_at, ends_at, '[)') WITH &&
            )
            WHERE (status <> 'cancelled');
    END IF;
END
$$;`

func NewDB(cfg config.DBConfig, debug bool) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	}
	if debug {
		gcfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.URL), gcfg)
	if err != nil {
		return nil, errs.Wrap(err, "connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.Wrap(err, "get sql.DB")
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	slog.Info("database ready")
	return db, nil
}

// Migrate roda o AutoMigrate e cria a constraint de sobreposição. Idempotente.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return errs.Wrap(err, "create btree_gist")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.Availability{},
		&models.Booking{},
		&models.NotificationSubscription{},
		&models.Payment{},
		&models.GalleryImage{},
		&models.AuditLog{},
	); err != nil {
		return errs.Wrap(err, "migrate")
	}

	if err := db.Exec(noOverlapConstraint).Error; err != nil {
		return errs.Wrap(err, "create overlap constraint")
	}

	db.Exec(`
        UPDATE barbers
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return nil
}
