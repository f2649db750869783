package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type SettingsHandler struct {
	db        *gorm.DB
	defaultTZ string
	audit     *audit.Dispatcher
}

func NewSettingsHandler(db *gorm.DB, defaultTZ string, audit *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{db: db, defaultTZ: defaultTZ, audit: audit}
}

type UpdateSettingsRequest struct {
	Name        *string `json:"nombre_salon" validate:"omitempty,min=1,max=200"`
	Address     *string `json:"direccion" validate:"omitempty,max=500"`
	Phone       *string `json:"telefono" validate:"omitempty,max=20,phone"`
	Email       *string `json:"email" validate:"omitempty,max=254,email"`
	Description *string `json:"descripcion" validate:"omitempty,max=1000"`
	Timezone    *string `json:"timezone"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := loadSettings(c.Request.Context(), h.db, h.defaultTZ)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	s, err := loadSettings(c.Request.Context(), h.db, h.defaultTZ)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if !timezone.IsValid(tz) {
			httperr.Respond(c, httperr.ErrField("timezone", "Zona horaria inválida."))
			return
		}
		s.Timezone = tz
	}
	if req.Name != nil {
		s.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		s.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		s.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		s.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Description != nil {
		s.Description = *req.Description
	}

	if err := h.db.WithContext(c.Request.Context()).Save(s).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserID(c),
		Action:   "settings_updated",
		Entity:   "settings",
		EntityID: &s.ID,
		Metadata: map[string]any{"timezone": s.Timezone},
	})

	httpresp.OK(c, s)
}
