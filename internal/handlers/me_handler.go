package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type MeHandler struct {
	db    *gorm.DB
	jwt   config.JWTConfig
	app   config.AppConfig
	cache cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewMeHandler(
	db *gorm.DB,
	jwt config.JWTConfig,
	app config.AppConfig,
	cache cache.AvailabilityCache,
	audit *audit.Dispatcher,
) *MeHandler {
	return &MeHandler{db: db, jwt: jwt, app: app, cache: cache, audit: audit}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	barber, err := findBarberByUser(h.db, userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"barber": barber,
	})
}

func (h *MeHandler) GetBarber(c *gin.Context) {
	barber, err := findBarberByUser(h.db, middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if barber == nil {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeBarberNotFound))
		return
	}
	c.JSON(http.StatusOK, barber)
}

// PutBarber cria ou atualiza o perfil. Na criação devolve um novo token
// já com o barberId.
func (h *MeHandler) PutBarber(c *gin.Context) {
	var req dto.BarberProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	userID := middleware.UserID(c)

	barber, err := findBarberByUser(h.db, userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	created := barber == nil
	if created {
		barber = &models.Barber{UserID: userID}
	}

	// ------------------------------
	// Slug
	// ------------------------------
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if slug == "" {
		slug = barber.Slug
	}
	if slug == "" || !slugPattern.MatchString(slug) {
		httperr.Validation(c, map[string]string{"slug": "Use letras minúsculas, números e hífens."})
		return
	}
	if slug != barber.Slug {
		var count int64
		if err := h.db.Model(&models.Barber{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			httperr.FromError(c, err)
			return
		}
		if count > 0 {
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeSlugTaken))
			return
		}
	}

	// ------------------------------
	// Timezone
	// ------------------------------
	tz := req.Timezone
	if tz == "" {
		tz = barber.Timezone
	}
	if tz == "" {
		tz = h.app.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.Validation(c, map[string]string{"timezone": "Fuso horário inválido."})
		return
	}

	barber.Slug = slug
	barber.ShopName = req.ShopName
	barber.Address = req.Address
	barber.PostalCode = req.PostalCode
	barber.City = req.City
	barber.Phone = req.Phone
	barber.Email = req.Email
	barber.Bio = req.Bio
	barber.Timezone = tz
	barber.TravelEnabled = req.TravelEnabled
	barber.ExtraSectionEnabled = req.ExtraSectionEnabled
	barber.ExtraSectionTitle = req.ExtraSectionTitle
	barber.ExtraSectionText = req.ExtraSectionText

	if err := h.db.Save(barber).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeSlugTaken))
			return
		}
		httperr.FromError(c, err)
		return
	}

	// fuso pode ter mudado
	h.cache.Invalidate(c.Request.Context(), barber.ID)

	action := "barber_updated"
	if created {
		action = "barber_created"
	}
	h.audit.Dispatch(audit.Event{
		BarberID: barber.ID,
		UserID:   &userID,
		Action:   action,
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	if !created {
		c.JSON(http.StatusOK, gin.H{"barber": barber})
		return
	}

	token, err := middleware.IssueToken(h.jwt.Secret, h.jwt.Duration, userID, barber.ID, c.GetString(middleware.ContextUserRole))
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"barber": barber,
		"token":  token,
	})
}
