package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	apuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// AppWebHandler serves the back office html pages.
type AppWebHandler struct {
	db        *gorm.DB
	defaultTZ string
	auth      *AuthHandler
	byMonth   *apuc.ListAppointmentsByMonth
}

func NewAppWebHandler(
	db *gorm.DB,
	defaultTZ string,
	auth *AuthHandler,
	byMonth *apuc.ListAppointmentsByMonth,
) *AppWebHandler {
	return &AppWebHandler{db: db, defaultTZ: defaultTZ, auth: auth, byMonth: byMonth}
}

// ======================================================
// LOGIN
// ======================================================

func (h *AppWebHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login", h.page(c, "Ingresar", nil))
}

// Login checks the form credentials and stores the token in the cookie.
func (h *AppWebHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))

	user, err := h.auth.authenticate(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		msg := "Error interno del servidor."
		status := http.StatusInternalServerError
		if errors.Is(err, errInvalidCredentials) {
			msg = "Credenciales inválidas."
			status = http.StatusUnauthorized
		}
		c.HTML(status, "login", h.page(c, "Ingresar", gin.H{"Error": msg, "Email": email}))
		return
	}

	token, claims, err := middleware.IssueToken(h.auth.config.JWTSecret, user, h.auth.now())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login", h.page(c, "Ingresar", gin.H{"Error": "Error interno del servidor."}))
		return
	}

	setAuthCookie(c, token, claims.ExpiresAt.Time, h.auth.config.IsProduction())
	c.Redirect(http.StatusSeeOther, "/web/agenda")
}

func (h *AppWebHandler) Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.Redirect(http.StatusSeeOther, "/web/login")
}

// ======================================================
// PAGES
// ======================================================

// Agenda shows one month (?mes=YYYY-MM) optionally filtered by ?estado=.
func (h *AppWebHandler) Agenda(c *gin.Context) {
	tz := salonTimezone(c.Request.Context(), h.db, h.defaultTZ)

	month := timezone.NowIn(tz)
	if raw := c.Query("mes"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			c.String(http.StatusBadRequest, "Mes inválido. Use YYYY-MM.")
			return
		}
		month = t
	}

	var status apdomain.Status
	if raw := c.Query("estado"); raw != "" {
		s, ok := apdomain.ParseStatus(raw)
		if !ok {
			c.String(http.StatusBadRequest, "Estado de cita inválido.")
			return
		}
		status = s
	}

	rows, err := h.byMonth.Execute(c.Request.Context(), tz, month.Year(), int(month.Month()))
	if err != nil {
		h.fail(c, err)
		return
	}

	if status != "" {
		filtered := rows[:0]
		for _, r := range rows {
			if r.Status == string(status) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	c.HTML(http.StatusOK, "agenda", h.page(c, "Agenda", gin.H{
		"Month":        month.Format("2006-01"),
		"Status":       status,
		"Statuses":     apdomain.Statuses(),
		"Appointments": rows,
	}))
}

// Clients accepts ?estado=all|active|inactive (default all).
func (h *AppWebHandler) Clients(c *gin.Context) {
	filter := c.DefaultQuery("estado", "all")

	q := h.db.WithContext(c.Request.Context()).Model(&models.Client{})
	switch filter {
	case "active":
		q = q.Where("active = ?", true)
	case "inactive":
		q = q.Where("active = ?", false)
	default:
		filter = "all"
	}

	var clients []models.Client
	if err := q.Order("first_name ASC, last_name ASC").Find(&clients).Error; err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "clientes", h.page(c, "Clientes", gin.H{
		"Filter":  filter,
		"Clients": dto.NewClients(clients),
	}))
}

func (h *AppWebHandler) Services(c *gin.Context) {
	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).Order("name ASC").Find(&services).Error; err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "servicios", h.page(c, "Servicios", gin.H{
		"Services": dto.NewServices(services),
	}))
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppWebHandler) page(c *gin.Context, title string, data gin.H) gin.H {
	out := gin.H{
		"Title": title,
		"Salon": defaultSalonName,
		"User":  middleware.UserID(c) != nil,
	}
	if s, err := loadSettings(c.Request.Context(), h.db, h.defaultTZ); err == nil {
		out["Salon"] = s.Name
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}

func (h *AppWebHandler) fail(c *gin.Context, err error) {
	httperr.Respond(c, err)
}
