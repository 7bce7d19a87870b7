package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextBarberID = "barberID"
	ContextUserRole = "userRole"
)

// IssueToken assina o JWT do painel. barberID pode ser uuid.Nil antes do
// setup da barbearia.
func IssueToken(secret string, ttl time.Duration, userID, barberID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID.String(),
		"barberId": barberID.String(),
		"role":     role,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token de acesso ausente.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho Authorization inválido.")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token inválido ou expirado.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token inválido.")
			return
		}

		sub, _ := claims["sub"].(string)
		barber, _ := claims["barberId"].(string)
		role, _ := claims["role"].(string)

		userID, err1 := uuid.Parse(sub)
		barberID, err2 := uuid.Parse(barber)
		if err1 != nil || err2 != nil {
			httperr.Unauthorized(c, "invalid_token_payload", "Token inválido.")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextBarberID, barberID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireBarber barra rotas do painel enquanto o dono não criou a barbearia.
func RequireBarber() gin.HandlerFunc {
	return func(c *gin.Context) {
		if BarberID(c) == uuid.Nil {
			httperr.Forbidden(c, "barber_setup_required", "Configure sua barbearia primeiro.")
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) uuid.UUID {
	v, _ := c.Get(ContextUserID)
	id, _ := v.(uuid.UUID)
	return id
}

func BarberID(c *gin.Context) uuid.UUID {
	v, _ := c.Get(ContextBarberID)
	id, _ := v.(uuid.UUID)
	return id
}
