package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Logger grava eventos na tabela audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		BarberID: ev.BarberID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// SlogSink só registra no log; usado no modo demo.
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Log(_ context.Context, ev Event) error {
	s.Logger.Info("audit",
		"barber_id", ev.BarberID,
		"action", ev.Action,
		"entity", ev.Entity,
		"entity_id", ev.EntityID,
	)
	return nil
}
