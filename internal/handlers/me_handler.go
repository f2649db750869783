package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type MeHandler struct {
	db        *gorm.DB
	defaultTZ string
}

func NewMeHandler(db *gorm.DB, defaultTZ string) *MeHandler {
	return &MeHandler{db: db, defaultTZ: defaultTZ}
}

// GetMe returns the authenticated user and the salon it works for.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		httperr.Unauthorized(c, "user_not_in_context", "No autenticado.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, *userID).Error; err != nil {
		httperr.Respond(c, notFound(err, "user"))
		return
	}

	salon, err := loadSettings(c.Request.Context(), h.db, h.defaultTZ)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"salon": gin.H{
			"id":           salon.ID,
			"nombre_salon": salon.Name,
			"telefono":     salon.Phone,
			"direccion":    salon.Address,
			"timezone":     salon.Timezone,
		},
	})
}
