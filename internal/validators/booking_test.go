package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

func validBooking() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		ServiceID:     "6f1c2c1e-8a43-4c55-9a55-2b8f3c7d2a10",
		BarberID:      "0b8e7a8e-7f0e-4b7a-8f5c-3b9b8d1f6e21",
		StartsAt:      "2026-06-01T09:00:00Z",
		CustomerName:  "Ana Souza",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "11987654321",
		LocationType:  "in-shop",
		PaymentMethod: "on-site",
	}
}

func TestStruct_ValidBooking(t *testing.T) {
	assert.Nil(t, Struct(validBooking()))
}

func TestStruct_BookingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *dto.CreateBookingRequest)
		field  string
	}{
		{"short name", func(r *dto.CreateBookingRequest) { r.CustomerName = "A" }, "customer_name"},
		{"bad email", func(r *dto.CreateBookingRequest) { r.CustomerEmail = "ana" }, "customer_email"},
		{"short phone", func(r *dto.CreateBookingRequest) { r.CustomerPhone = "123" }, "customer_phone"},
		{"bad service id", func(r *dto.CreateBookingRequest) { r.ServiceID = "abc" }, "service_id"},
		{"bad start", func(r *dto.CreateBookingRequest) { r.StartsAt = "2026-06-01 09:00" }, "starts_at"},
		{"bad end", func(r *dto.CreateBookingRequest) { r.EndsAt = "tomorrow" }, "ends_at"},
		{"bad location", func(r *dto.CreateBookingRequest) { r.LocationType = "garage" }, "location_type"},
		{"bad payment", func(r *dto.CreateBookingRequest) { r.PaymentMethod = "crypto" }, "payment_method"},
		{"home visit without address", func(r *dto.CreateBookingRequest) { r.LocationType = "home-visit" }, "customer_address"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBooking()
			tc.mutate(&req)

			fields := Struct(req)
			assert.Len(t, fields, 1)
			assert.Contains(t, fields, tc.field)
		})
	}
}

func TestStruct_HomeVisitWithAddress(t *testing.T) {
	req := validBooking()
	req.LocationType = "home-visit"
	req.CustomerAddress = "Rua A, 10"
	assert.Nil(t, Struct(req))
}

func TestStruct_WeeklyTemplate(t *testing.T) {
	ok := dto.WeeklyTemplateRequest{Days: []dto.WeeklyDay{
		{Weekday: 1, Enabled: true, StartTime: "09:00", EndTime: "17:00"},
		{Weekday: 0, Enabled: false},
	}}
	assert.Nil(t, Struct(ok))

	bad := dto.WeeklyTemplateRequest{Days: []dto.WeeklyDay{
		{Weekday: 9, Enabled: true, StartTime: "9h", EndTime: "17:00"},
	}}
	fields := Struct(bad)
	assert.Contains(t, fields, "days[0].weekday")
	assert.Contains(t, fields, "days[0].start_time")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}
