package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type AuthHandler struct {
	db  *gorm.DB
	jwt config.JWTConfig
}

func NewAuthHandler(db *gorm.DB, cfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{db: db, jwt: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --------- Handlers ---------

// Register cria só o usuário; o perfil da barbearia vem depois em PUT /api/me/barber.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if count > 0 {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeEmailTaken))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "owner",
	}

	if err := h.db.Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeEmailTaken))
			return
		}
		httperr.FromError(c, err)
		return
	}

	token, err := middleware.IssueToken(h.jwt.Secret, h.jwt.Duration, user.ID, uuid.Nil, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"barber": nil,
		"token":  token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	barber, err := findBarberByUser(h.db, user.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	barberID := uuid.Nil
	if barber != nil {
		barberID = barber.ID
	}

	token, err := middleware.IssueToken(h.jwt.Secret, h.jwt.Duration, user.ID, barberID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"barber": barber,
		"token":  token,
	})
}

// findBarberByUser devolve nil quando o usuário ainda não configurou a barbearia.
func findBarberByUser(db *gorm.DB, userID uuid.UUID) (*models.Barber, error) {
	var barber models.Barber
	err := db.Where("user_id = ?", userID).First(&barber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &barber, nil
}
