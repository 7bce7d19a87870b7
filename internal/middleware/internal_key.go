package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const HeaderInternalKey = "X-Internal-Key"

// InternalKey protege as rotas chamadas por outros serviços. Sem chave
// configurada todas as chamadas são recusadas.
func InternalKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		given := c.GetHeader(HeaderInternalKey)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(given)) != 1 {
			httperr.Unauthorized(c, "invalid_internal_key", "Chave interna inválida.")
			return
		}
		c.Next()
	}
}
