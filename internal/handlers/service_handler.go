package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
	"github.com/BruksfildServices01/salon-scheduler/internal/storage"
)

const maxImageBytes = 5 << 20

type ServiceHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	images storage.ImageStore
}

// NewServiceHandler accepts a nil image store; uploads then answer 503.
func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher, images storage.ImageStore) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit, images: images}
}

var serviceOrder = map[string]string{
	"nombre_servicio": "name",
	"precio":          "price",
	"fecha_creacion":  "created_at",
}

// --------- Requests ---------

type ServiceRequest struct {
	Name        *string          `json:"nombre_servicio" validate:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"precio"`
	Description *string          `json:"descripcion" validate:"omitempty,max=250"`
	Duration    *string          `json:"duracion_estimada"`
	Active      *bool            `json:"activo"`
	Category    *string          `json:"categoria" validate:"omitempty,max=50"`
}

func (r ServiceRequest) apply(s *models.Service) error {
	fe := httperr.FieldErrors{}

	if r.Name != nil {
		s.Name = strings.TrimSpace(*r.Name)
	}
	if s.Name == "" {
		fe.Add("nombre_servicio", "Este campo es obligatorio.")
	}

	if r.Price != nil {
		if r.Price.IsNegative() {
			fe.Add("precio", "El precio debe ser mayor o igual a 0.")
		} else if msg := money.CheckPrecision(*r.Price, money.AmountDigits, money.Places); msg != "" {
			fe.Add("precio", msg)
		}
		s.Price = *r.Price
	}

	if r.Duration != nil {
		secs, err := catalog.ParseDuration(*r.Duration)
		if err != nil {
			fe.Add("duracion_estimada", err.Error())
		}
		s.DurationSeconds = secs
	}
	if s.DurationSeconds <= 0 && len(fe["duracion_estimada"]) == 0 {
		fe.Add("duracion_estimada", "Este campo es obligatorio.")
	}

	if r.Description != nil {
		s.Description = strings.TrimSpace(*r.Description)
	}
	if r.Category != nil {
		s.Category = strings.TrimSpace(*r.Category)
	}
	if r.Active != nil {
		s.Active = *r.Active
	}

	return fe.Err()
}

// ======================================================
// LIST
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	p := httpresp.ParsePagination(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Service{})

	if active := queryBool(c, "activo"); active != nil {
		q = q.Where("active = ?", *active)
	}
	if category := strings.ToLower(strings.TrimSpace(c.Query("categoria"))); category != "" {
		q = q.Where("LOWER(category) LIKE ?", "%"+category+"%")
	}
	if query := strings.ToLower(strings.TrimSpace(c.Query("q"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var services []models.Service
	if err := q.
		Order(orderBy(c.Query("ordering"), serviceOrder, "name ASC")).
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, dto.NewServices(services), total, p)
}

// ======================================================
// CRUD
// ======================================================

func (h *ServiceHandler) Get(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, dto.NewService(*s))
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s := models.Service{Active: true}
	fe := httperr.FieldErrors{}
	if req.Price == nil {
		fe.Add("precio", "Este campo es obligatorio.")
	}
	if err := req.apply(&s); err != nil {
		fe.Merge(mustFieldErrors(err))
	}
	if err := fe.Err(); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Select("*").Omit("id").Create(&s).Error; err != nil {
		httperr.Respond(c, duplicateName(err))
		return
	}

	h.dispatch(c, "service_created", s.ID, map[string]any{"nombre_servicio": s.Name})
	httpresp.Created(c, dto.NewService(s))
}

func (h *ServiceHandler) Update(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	wasActive := s.Active
	if err := req.apply(s); err != nil {
		httperr.Respond(c, err)
		return
	}

	if wasActive && !s.Active {
		busy, err := h.hasActiveBookings(c, s.ID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if busy {
			httperr.Respond(c, httperr.ErrBusiness("service_has_active_bookings"))
			return
		}
	}

	if err := h.db.WithContext(c.Request.Context()).Save(s).Error; err != nil {
		httperr.Respond(c, duplicateName(err))
		return
	}

	h.dispatch(c, "service_updated", s.ID, nil)
	httpresp.OK(c, dto.NewService(*s))
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.AppointmentItem{}).
		Where("service_id = ?", s.ID).
		Count(&count).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if count > 0 {
		httperr.Respond(c, httperr.ErrBusiness("service_in_use"))
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(s).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if s.ImageURL != "" && h.images != nil {
		if err := h.images.Delete(c.Request.Context(), s.ImageURL); err != nil {
			logging.FromContext(c.Request.Context()).Warn("service image delete failed", zap.Error(err))
		}
	}

	h.dispatch(c, "service_deleted", s.ID, map[string]any{"nombre_servicio": s.Name})
	httpresp.NoContent(c)
}

// ======================================================
// ACTIONS
// ======================================================

func (h *ServiceHandler) Activate(c *gin.Context)   { h.setActive(c, true) }
func (h *ServiceHandler) Deactivate(c *gin.Context) { h.setActive(c, false) }

func (h *ServiceHandler) setActive(c *gin.Context, active bool) {
	s, ok := h.load(c)
	if !ok {
		return
	}

	if !active && s.Active {
		busy, err := h.hasActiveBookings(c, s.ID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if busy {
			httperr.Respond(c, httperr.ErrBusiness("service_has_active_bookings"))
			return
		}
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(s).
		Update("active", active).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	s.Active = active

	action := "service_deactivated"
	msg := "Servicio desactivado correctamente"
	if active {
		action = "service_activated"
		msg = "Servicio activado correctamente"
	}
	h.dispatch(c, action, s.ID, nil)

	httpresp.OK(c, gin.H{"mensaje": msg, "servicio": dto.NewService(*s)})
}

// ======================================================
// IMAGE
// ======================================================

// UploadImage stores the "imagen" form file as webp and replaces imagen_url.
func (h *ServiceHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		httperr.Respond(c, httperr.ErrUnavailable("storage_not_configured"))
		return
	}

	s, ok := h.load(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		httperr.Respond(c, httperr.ErrField("imagen", "Este campo es obligatorio."))
		return
	}
	if fileHeader.Size <= 0 || fileHeader.Size > maxImageBytes {
		httperr.Respond(c, httperr.ErrField("imagen", "La imagen debe pesar como máximo 5MB."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer file.Close()

	data, err := storage.ToWebP(file, storage.MaxImageWidth)
	if errors.Is(err, storage.ErrUnsupportedImage) {
		httperr.Respond(c, httperr.ErrBusiness("invalid_image"))
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	url, err := h.images.Put(c.Request.Context(), storage.ServiceImageKey(s.Name), data, "image/webp")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	previous := s.ImageURL
	if err := h.db.WithContext(c.Request.Context()).Model(s).Update("image_url", url).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	s.ImageURL = url

	if previous != "" {
		if err := h.images.Delete(c.Request.Context(), previous); err != nil {
			logging.FromContext(c.Request.Context()).Warn("service image delete failed", zap.Error(err))
		}
	}

	h.dispatch(c, "service_image_uploaded", s.ID, map[string]any{"imagen_url": url})
	httpresp.OK(c, dto.NewService(*s))
}

// ======================================================
// HELPERS
// ======================================================

func (h *ServiceHandler) load(c *gin.Context) (*models.Service, bool) {
	id, ok := parseID(c, "id", "service")
	if !ok {
		return nil, false
	}

	var s models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&s, id).Error; err != nil {
		httperr.Respond(c, notFound(err, "service"))
		return nil, false
	}
	return &s, true
}

// hasActiveBookings reports line items on pending or confirmed appointments.
func (h *ServiceHandler) hasActiveBookings(c *gin.Context, serviceID uint) (bool, error) {
	var count int64
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.AppointmentItem{}).
		Joins("JOIN appointments ON appointments.id = appointment_items.appointment_id").
		Where("appointment_items.service_id = ? AND appointments.status IN ?", serviceID,
			[]string{string(apdomain.StatusPending), string(apdomain.StatusConfirmed)}).
		Count(&count).Error
	return count > 0, err
}

func duplicateName(err error) error {
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrField("nombre_servicio", "Ya existe un servicio con este nombre.")
	}
	return err
}

func (h *ServiceHandler) dispatch(c *gin.Context, action string, id uint, meta map[string]any) {
	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserID(c),
		Action:   action,
		Entity:   "service",
		EntityID: &id,
		Metadata: meta,
	})
}
