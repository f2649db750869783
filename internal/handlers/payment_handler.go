package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	payuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

// PaymentUseCases groups the payment use cases the handler serves.
type PaymentUseCases struct {
	Record   *payuc.RecordPayment
	Update   *payuc.UpdatePayment
	MarkPaid *payuc.MarkPaid
	Refund   *payuc.Refund
	Delete   *payuc.DeletePayment
	List     *payuc.ListPayments
	Stats    *payuc.PaymentStats
	ByAppt   *payuc.PaymentsByAppointment
	Checkout *payuc.CreateCheckout
}

type PaymentHandler struct {
	db        *gorm.DB
	defaultTZ string
	uc        PaymentUseCases
}

func NewPaymentHandler(db *gorm.DB, defaultTZ string, uc PaymentUseCases) *PaymentHandler {
	return &PaymentHandler{db: db, defaultTZ: defaultTZ, uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePaymentRequest struct {
	AppointmentID uint             `json:"cita_id" validate:"required"`
	PaidAt        *string          `json:"fecha_pago"`
	Amount        *decimal.Decimal `json:"monto_total" validate:"required"`
	Method        string           `json:"metodo_pago" validate:"required"`
	Status        string           `json:"estado_pago"`
	Reference     string           `json:"referencia_pago" validate:"max=100"`
	Notes         string           `json:"notas_pago" validate:"max=1000"`
}

type UpdatePaymentRequest struct {
	AppointmentID *uint            `json:"cita_id"`
	PaidAt        *string          `json:"fecha_pago"`
	Amount        *decimal.Decimal `json:"monto_total"`
	Method        *string          `json:"metodo_pago"`
	Status        *string          `json:"estado_pago"`
	Reference     *string          `json:"referencia_pago" validate:"omitempty,max=100"`
	Notes         *string          `json:"notas_pago" validate:"omitempty,max=1000"`
}

type RefundRequest struct {
	Reason string `json:"motivo" validate:"max=500"`
}

// ======================================================
// LIST
// ======================================================

func (h *PaymentHandler) listInput(c *gin.Context) (payuc.ListPaymentsInput, bool) {
	from, to, err := parseDateRange(h.timezone(c), c.Query("fecha_desde"), c.Query("fecha_hasta"))
	if err != nil {
		httperr.Respond(c, httperr.ErrField("fecha", "Formato de fecha inválido. Use YYYY-MM-DD."))
		return payuc.ListPaymentsInput{}, false
	}

	return payuc.ListPaymentsInput{
		Status:        c.Query("estado_pago"),
		Method:        c.Query("metodo_pago"),
		AppointmentID: queryUint(c, "cita"),
		ClientID:      queryUint(c, "cliente"),
		From:          from,
		To:            to,
		MinAmount:     queryDecimal(c, "monto_minimo"),
		MaxAmount:     queryDecimal(c, "monto_maximo"),
		Query:         strings.TrimSpace(c.Query("q")),
		OrderBy:       c.Query("ordering"),
	}, true
}

func (h *PaymentHandler) List(c *gin.Context) {
	in, ok := h.listInput(c)
	if !ok {
		return
	}

	p := httpresp.ParsePagination(c)
	in.Limit = p.Size
	in.Offset = p.Offset()

	payments, total, err := h.uc.List.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, dto.NewPayments(payments), total, p)
}

// Stats accepts the same filters as List.
func (h *PaymentHandler) Stats(c *gin.Context) {
	in, ok := h.listInput(c)
	if !ok {
		return
	}

	stats, err := h.uc.Stats.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, stats)
}

func (h *PaymentHandler) ByAppointment(c *gin.Context) {
	appointmentID := queryUint(c, "cita_id")
	if appointmentID == 0 {
		httperr.Respond(c, httperr.ErrField("cita_id", "Este campo es obligatorio."))
		return
	}

	payments, totals, err := h.uc.ByAppt.Execute(c.Request.Context(), appointmentID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"cita_id": appointmentID,
		"pagos":   dto.NewPayments(payments),
		"totales": totals,
	})
}

// ======================================================
// CRUD
// ======================================================

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "payment")
	if !ok {
		return
	}

	p, err := h.uc.List.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewPayment(*p))
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	paidAt, ok := h.paidAt(c, req.PaidAt)
	if !ok {
		return
	}

	p, err := h.uc.Record.Execute(c.Request.Context(), payuc.RecordPaymentInput{
		AppointmentID: req.AppointmentID,
		PaidAt:        paidAt,
		Amount:        *req.Amount,
		Method:        req.Method,
		Status:        req.Status,
		Reference:     strings.TrimSpace(req.Reference),
		Notes:         strings.TrimSpace(req.Notes),
		CreatedBy:     middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewPayment(*p))
}

// Update serves both PUT and PATCH.
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "payment")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	paidAt, ok := h.paidAt(c, req.PaidAt)
	if !ok {
		return
	}

	p, err := h.uc.Update.Execute(c.Request.Context(), payuc.UpdatePaymentInput{
		ID:            id,
		AppointmentID: req.AppointmentID,
		PaidAt:        paidAt,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        req.Status,
		Reference:     req.Reference,
		Notes:         req.Notes,
		UserID:        middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewPayment(*p))
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "payment")
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

func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	id, ok := parseID(c, "id", "payment")
	if !ok {
		return
	}

	res, err := h.uc.MarkPaid.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"mensaje":         "Pago marcado como pagado",
		"estado_anterior": res.PreviousStatus,
		"cita_completada": res.AppointmentCompleted,
		"pago":            dto.NewPayment(*res.Payment),
	})
}

// Refund accepts an optional {"motivo": "..."} body.
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, ok := parseID(c, "id", "payment")
	if !ok {
		return
	}

	var req RefundRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	p, err := h.uc.Refund.Execute(c.Request.Context(), id, strings.TrimSpace(req.Reason), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"mensaje": "Pago reembolsado", "pago": dto.NewPayment(*p)})
}

// Checkout creates a MercadoPago preference for a pending payment.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	id, ok := parseID(c, "id", "payment")
	if !ok {
		return
	}

	res, err := h.uc.Checkout.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}

// ======================================================
// HELPERS
// ======================================================

// paidAt parses an optional fecha_pago. On failure it writes the 400.
func (h *PaymentHandler) paidAt(c *gin.Context, raw *string) (*time.Time, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, true
	}
	t, err := parseDateTime(h.timezone(c), strings.TrimSpace(*raw))
	if err != nil {
		httperr.Respond(c, httperr.ErrField("fecha_pago", "Formato de fecha y hora inválido."))
		return nil, false
	}
	return &t, true
}

func (h *PaymentHandler) timezone(c *gin.Context) string {
	return salonTimezone(c.Request.Context(), h.db, h.defaultTZ)
}
