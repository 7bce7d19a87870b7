package payment

import domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"

// MapStatus traduz o status do Mercado Pago para o status do agendamento.
// ok=false para estados intermediários que não mudam nada.
func MapStatus(providerStatus string) (domain.PaymentStatus, bool) {
	switch providerStatus {
	case "approved":
		return domain.PaymentCompleted, true
	case "rejected", "cancelled":
		return domain.PaymentFailed, true
	case "refunded", "charged_back":
		return domain.PaymentRefunded, true
	case "pending", "in_process", "authorized", "in_mediation":
		return domain.PaymentPending, true
	}
	return "", false
}
