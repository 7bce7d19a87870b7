// Package demo carrega os dados de exemplo do modo sem banco.
package demo

import (
	"context"
	_ "embed"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/errs"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAvailability "github.com/BruksfildServices01/barber-booking/internal/usecase/availability"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Barbers []seedBarber `yaml:"barbers"`
}

type seedBarber struct {
	ID                  uuid.UUID     `yaml:"id"`
	Slug                string        `yaml:"slug"`
	ShopName            string        `yaml:"shop_name"`
	Address             string        `yaml:"address"`
	PostalCode          string        `yaml:"postal_code"`
	City                string        `yaml:"city"`
	Phone               string        `yaml:"phone"`
	Email               string        `yaml:"email"`
	Bio                 string        `yaml:"bio"`
	Timezone            string        `yaml:"timezone"`
	TravelEnabled       bool          `yaml:"travel_enabled"`
	ExtraSectionEnabled bool          `yaml:"extra_section_enabled"`
	ExtraSectionTitle   string        `yaml:"extra_section_title"`
	ExtraSectionText    string        `yaml:"extra_section_text"`
	Services            []seedService `yaml:"services"`
	Weekly              []seedDay     `yaml:"weekly"`
	Gallery             []string      `yaml:"gallery"`
}

type seedService struct {
	ID              uuid.UUID `yaml:"id"`
	Title           string    `yaml:"title"`
	Description     string    `yaml:"description"`
	DurationMinutes int       `yaml:"duration_minutes"`
	Price           string    `yaml:"price"`
	Active          *bool     `yaml:"active"`
}

type seedDay struct {
	Weekday   int    `yaml:"weekday"`
	Enabled   bool   `yaml:"enabled"`
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
}

func (b seedBarber) template() []dto.WeeklyDay {
	out := make([]dto.WeeklyDay, 0, len(b.Weekly))
	for _, d := range b.Weekly {
		out = append(out, dto.WeeklyDay{
			Weekday:   d.Weekday,
			Enabled:   d.Enabled,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}
	return out
}

// Parse lê o seed embutido.
func Parse() ([]seedBarber, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, errs.Wrap(err, "parse demo seed")
	}
	return f.Barbers, nil
}

// Load popula o store. As janelas saem do modelo semanal, então sempre
// cobrem os próximos dias a partir de agora.
func Load(ctx context.Context, store *memory.Store, weekly *ucAvailability.GenerateWeekly) error {
	barbers, err := Parse()
	if err != nil {
		return err
	}

	for _, sb := range barbers {
		barber := store.AddBarber(models.Barber{
			ID:                  sb.ID,
			Slug:                sb.Slug,
			ShopName:            sb.ShopName,
			Address:             sb.Address,
			PostalCode:          sb.PostalCode,
			City:                sb.City,
			Phone:               sb.Phone,
			Email:               sb.Email,
			Bio:                 sb.Bio,
			Timezone:            sb.Timezone,
			TravelEnabled:       sb.TravelEnabled,
			ExtraSectionEnabled: sb.ExtraSectionEnabled,
			ExtraSectionTitle:   sb.ExtraSectionTitle,
			ExtraSectionText:    sb.ExtraSectionText,
		})

		for _, ss := range sb.Services {
			price, err := decimal.NewFromString(ss.Price)
			if err != nil {
				return errs.Wrapf(err, "service %s price", ss.Title)
			}
			active := ss.Active == nil || *ss.Active
			store.AddService(models.Service{
				ID:              ss.ID,
				BarberID:        barber.ID,
				Title:           ss.Title,
				Description:     ss.Description,
				DurationMinutes: ss.DurationMinutes,
				Price:           price,
				Active:          active,
			})
		}

		for i, url := range sb.Gallery {
			store.AddGalleryImage(models.GalleryImage{
				BarberID: barber.ID,
				URL:      url,
				Position: i,
			})
		}

		if _, err := weekly.Execute(ctx, barber.ID, uuid.Nil, sb.template()); err != nil {
			return errs.Wrapf(err, "weekly template for %s", sb.Slug)
		}
	}
	return nil
}
