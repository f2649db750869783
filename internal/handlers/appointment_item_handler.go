package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	apuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type AppointmentItemHandler struct {
	add    *apuc.AddItem
	update *apuc.UpdateItem
	remove *apuc.RemoveItem
	list   *apuc.ListItems
}

func NewAppointmentItemHandler(
	add *apuc.AddItem,
	update *apuc.UpdateItem,
	remove *apuc.RemoveItem,
	list *apuc.ListItems,
) *AppointmentItemHandler {
	return &AppointmentItemHandler{add: add, update: update, remove: remove, list: list}
}

// --------- Requests ---------

type CreateItemRequest struct {
	AppointmentID uint `json:"cita_id" validate:"required"`
	ItemRequest
}

type UpdateItemRequest struct {
	ServiceID   *uint            `json:"servicio_id"`
	AgreedPrice *decimal.Decimal `json:"precio_acordado"`
	Quantity    *int             `json:"cantidad_servicios"`
	Discount    *decimal.Decimal `json:"descuento"`
	Notes       *string          `json:"notas_detalle" validate:"omitempty,max=500"`
}

type DiscountRequest struct {
	Discount *decimal.Decimal `json:"descuento" validate:"required"`
}

type QuantityRequest struct {
	Quantity *int `json:"cantidad_servicios" validate:"required"`
}

// ======================================================
// LIST / GET
// ======================================================

// List filters by ?cita_id=, ?servicio_id= and ?estado_cita=.
func (h *AppointmentItemHandler) List(c *gin.Context) {
	f := domain.ItemFilter{
		AppointmentID: queryUint(c, "cita_id"),
		ServiceID:     queryUint(c, "servicio_id"),
	}

	if raw := c.Query("estado_cita"); raw != "" {
		s, ok := domain.ParseStatus(raw)
		if !ok {
			httperr.Respond(c, httperr.ErrField("estado_cita", "Estado de cita inválido."))
			return
		}
		f.Status = s
	}

	items, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewItems(items))
}

func (h *AppointmentItemHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment_item")
	if !ok {
		return
	}

	it, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewItem(*it))
}

// ======================================================
// WRITE
// ======================================================

func (h *AppointmentItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	it, err := h.add.Execute(c.Request.Context(), req.AppointmentID, req.input(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewItem(*it))
}

func (h *AppointmentItemHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment_item")
	if !ok {
		return
	}

	var req UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Notes != nil {
		trimmed := strings.TrimSpace(*req.Notes)
		req.Notes = &trimmed
	}

	it, err := h.update.Execute(c.Request.Context(), apuc.UpdateItemInput{
		ID:          id,
		ServiceID:   req.ServiceID,
		AgreedPrice: req.AgreedPrice,
		Quantity:    req.Quantity,
		Discount:    req.Discount,
		Notes:       req.Notes,
		UserID:      middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewItem(*it))
}

func (h *AppointmentItemHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment_item")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// ACTIONS
// ======================================================

func (h *AppointmentItemHandler) ApplyDiscount(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment_item")
	if !ok {
		return
	}

	var req DiscountRequest
	if !bindJSON(c, &req) {
		return
	}

	it, err := h.update.ApplyDiscount(c.Request.Context(), id, *req.Discount, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"mensaje": "Descuento aplicado correctamente", "detalle": dto.NewItem(*it)})
}

func (h *AppointmentItemHandler) UpdateQuantity(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment_item")
	if !ok {
		return
	}

	var req QuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	it, err := h.update.UpdateQuantity(c.Request.Context(), id, *req.Quantity, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"mensaje": "Cantidad actualizada correctamente", "detalle": dto.NewItem(*it)})
}
