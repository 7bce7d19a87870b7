package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/barber-booking/internal/usecase/availability"
)

type AvailabilityHandler struct {
	weekly  *ucAvailability.GenerateWeekly
	windows *ucAvailability.ManageWindows
}

func NewAvailabilityHandler(
	weekly *ucAvailability.GenerateWeekly,
	windows *ucAvailability.ManageWindows,
) *AvailabilityHandler {
	return &AvailabilityHandler{weekly: weekly, windows: windows}
}

func (h *AvailabilityHandler) List(c *gin.Context) {
	rows, err := h.windows.List(c.Request.Context(), middleware.BarberID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Weekly troca as janelas futuras pelas geradas a partir do modelo.
func (h *AvailabilityHandler) Weekly(c *gin.Context) {
	var req dto.WeeklyTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	rows, err := h.weekly.Execute(
		c.Request.Context(),
		middleware.BarberID(c),
		middleware.UserID(c),
		req.Days,
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"created": len(rows),
		"windows": rows,
	})
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", httperr.CodeNotFound)
	if !ok {
		return
	}

	err := h.windows.Delete(
		c.Request.Context(),
		middleware.BarberID(c),
		middleware.UserID(c),
		id,
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
