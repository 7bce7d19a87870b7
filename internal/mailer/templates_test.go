package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmation(t *testing.T) {
	msg, err := Confirmation("ana@example.com", ConfirmationData{
		CustomerName: "Ana <script>",
		ShopName:     "Luccifadez",
		ServiceTitle: "Corte",
		Date:         "01/06/2026",
		Time:         "09:00 - 09:45",
		CancelURL:    "http://localhost:3000/bookings/1/cancel?token=abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, "Agendamento confirmado - Luccifadez", msg.Subject)
	assert.Contains(t, msg.HTML, "09:00 - 09:45")
	assert.Contains(t, msg.HTML, "token=abc")
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestCancellationAndSlotAvailable(t *testing.T) {
	msg, err := Cancellation("ana@example.com", CancellationData{ShopName: "Luccifadez", ServiceTitle: "Corte"})
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "Corte")

	msg, err = SlotAvailable("bia@example.com", SlotAvailableData{ShopName: "Luccifadez", Date: "02/06/2026", BookingURL: "http://x/barbers/luccifadez"})
	require.NoError(t, err)
	assert.Equal(t, "Horário disponível - Luccifadez", msg.Subject)
	assert.Contains(t, msg.HTML, "02/06/2026")
}
