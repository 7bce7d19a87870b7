package httperr

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/errs"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func TooManyRequests(c *gin.Context) {
	Write(c, http.StatusTooManyRequests, "rate_limited", "Muitas requisições. Tente novamente em instantes.")
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Validation responde 400 com as mensagens por campo.
func Validation(c *gin.Context, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, HTTPError{
		Code:    "validation_failed",
		Message: "Dados inválidos.",
		Fields:  fields,
	})
}

// ======================================================
// Mapeamento de erros de negócio
// ======================================================

type mapping struct {
	status  int
	message string
}

var businessMap = map[string]mapping{
	CodeBarberNotFound:           {http.StatusNotFound, "Barbeiro não encontrado."},
	CodeServiceNotFound:          {http.StatusNotFound, "Serviço não encontrado."},
	CodeBookingNotFound:          {http.StatusNotFound, "Agendamento não encontrado."},
	CodeNotFound:                 {http.StatusNotFound, "Registro não encontrado."},
	CodeServiceUnavailable:       {http.StatusBadRequest, "Serviço indisponível para agendamento."},
	CodeSlotUnavailable:          {http.StatusConflict, "Este horário acabou de ser reservado. Escolha outro."},
	CodeOutsideAvailability:      {http.StatusBadRequest, "Horário fora da disponibilidade do barbeiro."},
	CodeStartInPast:              {http.StatusBadRequest, "O horário escolhido já passou."},
	CodeEndMismatch:              {http.StatusBadRequest, "O término não corresponde à duração do serviço."},
	CodeHomeVisitUnavailable:     {http.StatusBadRequest, "Este barbeiro não atende a domicílio."},
	CodeAddressRequired:          {http.StatusBadRequest, "Endereço obrigatório para atendimento a domicílio."},
	CodeTokenRequired:            {http.StatusBadRequest, "Token de cancelamento obrigatório."},
	CodeAlreadyCancelled:         {http.StatusBadRequest, "Agendamento já cancelado."},
	CodeInvalidState:             {http.StatusBadRequest, "Operação inválida para o status atual."},
	CodeCancellationWindowPassed: {http.StatusBadRequest, "Cancelamentos só são permitidos até 24 horas antes do horário."},
	CodeInvalidSignature:         {http.StatusBadRequest, "Assinatura inválida."},
	CodeAlreadyPaid:              {http.StatusBadRequest, "Agendamento já pago."},
	CodeNotOnlinePayment:         {http.StatusBadRequest, "Agendamento não usa pagamento online."},
	CodeServiceHasBookings:       {http.StatusConflict, "Serviço possui agendamentos futuros. Desative-o."},
	CodeSlugTaken:                {http.StatusConflict, "Slug já utilizado."},
	CodeEmailTaken:               {http.StatusConflict, "E-mail já cadastrado."},
	CodeInvalidDate:              {http.StatusBadRequest, "Data inválida."},
	CodeInvalidTemplate:          {http.StatusBadRequest, "Modelo semanal inválido."},
}

// FromError escreve a resposta adequada para err. Erros que não são de
// negócio viram 500 e são logados com stack.
func FromError(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		if m, found := businessMap[be.Code]; found {
			Write(c, m.status, be.Code, m.message)
			return
		}
		BadRequest(c, be.Code, be.Code)
		return
	}

	slog.Error("unhandled error",
		"path", c.Request.URL.Path,
		"error", err.Error(),
		"stack", errs.StackLines(err, 12),
	)
	Internal(c, "internal_error", "Erro interno.")
}
