package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// bindJSON faz o bind e roda o validator. Responde e devolve false em erro.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "Corpo da requisição inválido.")
		return false
	}
	if fields := validators.Struct(req); fields != nil {
		httperr.Validation(c, fields)
		return false
	}
	return true
}

func uuidParam(c *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.NotFound(c, code, "Registro não encontrado.")
		return uuid.Nil, false
	}
	return id, true
}

func uuidQuery(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Query(name))
	if err != nil {
		httperr.Validation(c, map[string]string{name: "Identificador inválido."})
		return uuid.Nil, false
	}
	return id, true
}
