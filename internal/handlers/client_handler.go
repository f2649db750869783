package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	apuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type ClientHandler struct {
	db           *gorm.DB
	audit        *audit.Dispatcher
	appointments *apuc.ListAppointments
}

func NewClientHandler(
	db *gorm.DB,
	audit *audit.Dispatcher,
	appointments *apuc.ListAppointments,
) *ClientHandler {
	return &ClientHandler{db: db, audit: audit, appointments: appointments}
}

var clientOrder = map[string]string{
	"fecha_registro": "created_at",
	"nombre":         "first_name",
	"apellido":       "last_name",
}

// --------- Requests ---------

type ClientRequest struct {
	FirstName *string `json:"nombre" validate:"omitempty,max=100,personname"`
	LastName  *string `json:"apellido" validate:"omitempty,max=100,personname"`
	Phone     *string `json:"telefono" validate:"omitempty,max=20,phone"`
	Email     *string `json:"email" validate:"omitempty,max=254,email"`
	Active    *bool   `json:"activo"`
	Notes     *string `json:"notas" validate:"omitempty,max=250"`
}

func (r ClientRequest) apply(cl *models.Client) {
	if r.FirstName != nil {
		cl.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		cl.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.Phone != nil {
		cl.Phone = validators.NormalizePhone(*r.Phone)
	}
	if r.Email != nil {
		cl.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Active != nil {
		cl.Active = *r.Active
	}
	if r.Notes != nil {
		cl.Notes = *r.Notes
	}
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	p := httpresp.ParsePagination(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Client{})

	if active := queryBool(c, "activo"); active != nil {
		q = q.Where("active = ?", *active)
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("q"))); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var clients []models.Client
	if err := q.
		Order(orderBy(c.Query("ordering"), clientOrder, "first_name ASC, last_name ASC")).
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&clients).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, dto.NewClients(clients), total, p)
}

// ======================================================
// CRUD
// ======================================================

func (h *ClientHandler) Get(c *gin.Context) {
	cl, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, dto.NewClient(*cl))
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	cl := models.Client{Active: true}
	req.apply(&cl)

	if cl.FirstName == "" {
		httperr.Respond(c, httperr.ErrField("nombre", "Este campo es obligatorio."))
		return
	}
	if err := h.checkUnique(c, &cl); err != nil {
		httperr.Respond(c, err)
		return
	}

	// Select("*") guarda activo=false en lugar del default de la columna.
	if err := h.db.WithContext(c.Request.Context()).Select("*").Omit("id").Create(&cl).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.dispatch(c, "client_created", cl.ID, nil)
	httpresp.Created(c, dto.NewClient(cl))
}

func (h *ClientHandler) Update(c *gin.Context) {
	cl, ok := h.load(c)
	if !ok {
		return
	}

	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	req.apply(cl)

	if cl.FirstName == "" {
		httperr.Respond(c, httperr.ErrField("nombre", "Este campo es obligatorio."))
		return
	}
	if err := h.checkUnique(c, cl); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(cl).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.dispatch(c, "client_updated", cl.ID, nil)
	httpresp.OK(c, dto.NewClient(*cl))
}

// Delete removes the client with every appointment, line item and payment.
func (h *ClientHandler) Delete(c *gin.Context) {
	cl, ok := h.load(c)
	if !ok {
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		ids := tx.Model(&models.Appointment{}).Select("id").Where("client_id = ?", cl.ID)

		if err := tx.Where("appointment_id IN (?)", ids).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("appointment_id IN (?)", ids).Delete(&models.AppointmentItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", cl.ID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(cl).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.dispatch(c, "client_deleted", cl.ID, map[string]any{"nombre": cl.FullName()})
	httpresp.NoContent(c)
}

// ======================================================
// ACTIONS
// ======================================================

func (h *ClientHandler) Activate(c *gin.Context)   { h.setActive(c, true) }
func (h *ClientHandler) Deactivate(c *gin.Context) { h.setActive(c, false) }

func (h *ClientHandler) setActive(c *gin.Context, active bool) {
	cl, ok := h.load(c)
	if !ok {
		return
	}

	if active {
		cl.Active = true
		if err := h.checkUnique(c, cl); err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(cl).
		Update("active", active).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	cl.Active = active

	action := "client_deactivated"
	msg := "Cliente desactivado correctamente"
	if active {
		action = "client_activated"
		msg = "Cliente activado correctamente"
	}
	h.dispatch(c, action, cl.ID, nil)

	httpresp.OK(c, gin.H{"mensaje": msg, "cliente": dto.NewClient(*cl)})
}

// Appointments lists the client's appointments, newest first.
func (h *ClientHandler) Appointments(c *gin.Context) {
	cl, ok := h.load(c)
	if !ok {
		return
	}

	aps, _, err := h.appointments.Execute(c.Request.Context(), apuc.ListAppointmentsInput{
		ClientID: cl.ID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointments(aps))
}

// ======================================================
// HELPERS
// ======================================================

func (h *ClientHandler) load(c *gin.Context) (*models.Client, bool) {
	id, ok := parseID(c, "id", "client")
	if !ok {
		return nil, false
	}

	var cl models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&cl, id).Error; err != nil {
		httperr.Respond(c, notFound(err, "client"))
		return nil, false
	}
	return &cl, true
}

// checkUnique enforces email/phone uniqueness among active clients.
func (h *ClientHandler) checkUnique(c *gin.Context, cl *models.Client) error {
	if !cl.Active {
		return nil
	}

	fe := httperr.FieldErrors{}
	check := func(column, value, field, msg string) error {
		if value == "" {
			return nil
		}
		var count int64
		err := h.db.WithContext(c.Request.Context()).
			Model(&models.Client{}).
			Where(column+" = ? AND active = ? AND id <> ?", value, true, cl.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			fe.Add(field, msg)
		}
		return nil
	}

	if err := check("email", cl.Email, "email", "Ya existe un cliente activo con este email."); err != nil {
		return err
	}
	if err := check("phone", cl.Phone, "telefono", "Ya existe un cliente activo con este teléfono."); err != nil {
		return err
	}
	return fe.Err()
}

func (h *ClientHandler) dispatch(c *gin.Context, action string, id uint, meta map[string]any) {
	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserID(c),
		Action:   action,
		Entity:   "client",
		EntityID: &id,
		Metadata: meta,
	})
}
