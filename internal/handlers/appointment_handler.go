package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	apuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentUseCases groups the appointment use cases the handler serves.
type AppointmentUseCases struct {
	Create   *apuc.CreateAppointment
	Update   *apuc.UpdateAppointment
	Confirm  *apuc.ConfirmAppointment
	Cancel   *apuc.CancelAppointment
	Complete *apuc.CompleteAppointment
	Delete   *apuc.DeleteAppointment
	List     *apuc.ListAppointments
	Get      *apuc.GetAppointment
	ByDate   *apuc.ListAppointmentsByDate
	ByMonth  *apuc.ListAppointmentsByMonth
}

type AppointmentHandler struct {
	db        *gorm.DB
	defaultTZ string
	uc        AppointmentUseCases
}

func NewAppointmentHandler(db *gorm.DB, defaultTZ string, uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{db: db, defaultTZ: defaultTZ, uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type ItemRequest struct {
	ServiceID   uint             `json:"servicio_id" validate:"required"`
	AgreedPrice *decimal.Decimal `json:"precio_acordado"`
	Quantity    *int             `json:"cantidad_servicios"`
	Discount    *decimal.Decimal `json:"descuento"`
	Notes       string           `json:"notas_detalle" validate:"max=500"`
}

func (r ItemRequest) input() apuc.ItemInput {
	in := apuc.ItemInput{
		ServiceID:   r.ServiceID,
		AgreedPrice: r.AgreedPrice,
		Quantity:    1,
		Notes:       strings.TrimSpace(r.Notes),
	}
	if r.Quantity != nil {
		in.Quantity = *r.Quantity
	}
	if r.Discount != nil {
		in.Discount = *r.Discount
	}
	return in
}

type CreateAppointmentRequest struct {
	ClientID    uint          `json:"cliente_id" validate:"required"`
	ScheduledAt string        `json:"fecha_hora_cita" validate:"required"`
	Status      string        `json:"estado_cita"`
	Notes       string        `json:"observaciones" validate:"max=1000"`
	Items       []ItemRequest `json:"detalles" validate:"dive"`
}

type UpdateAppointmentRequest struct {
	ClientID    *uint   `json:"cliente_id"`
	ScheduledAt *string `json:"fecha_hora_cita"`
	Status      *string `json:"estado_cita"`
	Notes       *string `json:"observaciones" validate:"omitempty,max=1000"`
}

type CancelRequest struct {
	Reason string `json:"motivo" validate:"max=500"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	tz := h.timezone(c)
	p := httpresp.ParsePagination(c)

	from, to, err := parseDateRange(tz, c.Query("fecha_desde"), c.Query("fecha_hasta"))
	if err != nil {
		httperr.Respond(c, httperr.ErrField("fecha", "Formato de fecha inválido. Use YYYY-MM-DD."))
		return
	}

	var statuses []string
	if raw := c.Query("estado"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	aps, total, err := h.uc.List.Execute(c.Request.Context(), apuc.ListAppointmentsInput{
		Statuses: statuses,
		From:     from,
		To:       to,
		ClientID: queryUint(c, "cliente_id"),
		Query:    c.Query("q"),
		OrderBy:  c.Query("ordering"),
		Limit:    p.Size,
		Offset:   p.Offset(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, dto.NewAppointments(aps), total, p)
}

// Upcoming lists pending and confirmed appointments of the next seven days.
func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	out, err := h.uc.ByDate.Upcoming(c.Request.Context(), h.timezone(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// Today accepts an optional ?fecha=YYYY-MM-DD.
func (h *AppointmentHandler) Today(c *gin.Context) {
	tz := h.timezone(c)

	var date time.Time
	if raw := c.Query("fecha"); raw != "" {
		d, err := timezone.ParseDate(tz, raw)
		if err != nil {
			httperr.Respond(c, httperr.ErrField("fecha", "Formato de fecha inválido. Use YYYY-MM-DD."))
			return
		}
		date = d
	}

	out, err := h.uc.ByDate.Execute(c.Request.Context(), tz, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// Month defaults to the current month in the salon timezone.
func (h *AppointmentHandler) Month(c *gin.Context) {
	tz := h.timezone(c)
	now := timezone.NowIn(tz)

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 1 {
		httperr.Respond(c, httperr.ErrField("year", "Año inválido."))
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		httperr.Respond(c, httperr.ErrField("month", "Mes inválido."))
		return
	}

	out, err := h.uc.ByMonth.Execute(c.Request.Context(), tz, year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"year":  year,
		"month": month,
		"citas": out,
	})
}

// ======================================================
// CRUD
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointment(ap))
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	scheduledAt, err := parseDateTime(h.timezone(c), req.ScheduledAt)
	if err != nil {
		httperr.Respond(c, httperr.ErrField("fecha_hora_cita", "Formato de fecha y hora inválido."))
		return
	}

	in := apuc.CreateAppointmentInput{
		ClientID:    req.ClientID,
		ScheduledAt: scheduledAt,
		Status:      req.Status,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedBy:   middleware.UserID(c),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, it.input())
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewAppointment(ap))
}

// Update serves both PUT and PATCH; absent fields are left unchanged.
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	in := apuc.UpdateAppointmentInput{
		ID:       id,
		ClientID: req.ClientID,
		Status:   req.Status,
		Notes:    req.Notes,
		UserID:   middleware.UserID(c),
	}

	if req.ScheduledAt != nil {
		t, err := parseDateTime(h.timezone(c), *req.ScheduledAt)
		if err != nil {
			httperr.Respond(c, httperr.ErrField("fecha_hora_cita", "Formato de fecha y hora inválido."))
			return
		}
		in.ScheduledAt = &t
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointment(ap))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// ACTIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}

	ap, err := h.uc.Confirm.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"mensaje": "Cita confirmada exitosamente", "cita": dto.NewAppointment(ap)})
}

// Cancel accepts an optional {"motivo": "..."} body.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}

	var req CancelRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Cancel.Execute(c.Request.Context(), id, strings.TrimSpace(req.Reason), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"mensaje": "Cita cancelada exitosamente", "cita": dto.NewAppointment(ap)})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}

	ap, err := h.uc.Complete.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"mensaje": "Cita completada exitosamente", "cita": dto.NewAppointment(ap)})
}

// Services returns the line items with the appointment total.
func (h *AppointmentHandler) Services(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	total := domain.Total(ap.Items)
	httpresp.OK(c, gin.H{
		"cita_id":                ap.ID,
		"detalles":               dto.NewItems(ap.Items),
		"monto_total":            total,
		"monto_total_formateado": money.Format(total, 0),
		"cantidad_servicios":     len(ap.Items),
	})
}

func (h *AppointmentHandler) timezone(c *gin.Context) string {
	return salonTimezone(c.Request.Context(), h.db, h.defaultTZ)
}
