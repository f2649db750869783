package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
)

type AppointmentDTO struct {
	ID              uint            `json:"id"`
	ClientID        uint            `json:"cliente_id"`
	ClientName      string          `json:"cliente_nombre"`
	ClientPhone     string          `json:"cliente_telefono"`
	ClientEmail     string          `json:"cliente_email"`
	ScheduledAt     time.Time       `json:"fecha_hora_cita"`
	EndsAt          time.Time       `json:"fecha_hora_fin"`
	Status          string          `json:"estado_cita"`
	StatusLabel     string          `json:"estado_cita_display"`
	Notes           string          `json:"observaciones"`
	Total           decimal.Decimal `json:"monto_total"`
	TotalFormatted  string          `json:"monto_total_formateado"`
	DurationMinutes int64           `json:"duracion_total"`
	Modifiable      bool            `json:"puede_ser_modificada"`
	ServiceCount    int             `json:"cantidad_servicios"`
	Items           []ItemDTO       `json:"detalles"`
	CreatedByID     *uint           `json:"creado_por"`
	CreatedAt       time.Time       `json:"fecha_creacion"`
	UpdatedAt       time.Time       `json:"fecha_actualizacion"`
}

type ItemDTO struct {
	ID                    uint            `json:"id"`
	AppointmentID         uint            `json:"cita_id"`
	ServiceID             uint            `json:"servicio_id"`
	ServiceName           string          `json:"servicio_nombre"`
	AgreedPrice           decimal.Decimal `json:"precio_acordado"`
	Quantity              int             `json:"cantidad_servicios"`
	Discount              decimal.Decimal `json:"descuento"`
	UnitPriceWithDiscount decimal.Decimal `json:"precio_unitario_con_descuento"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	DurationMinutes       int64           `json:"duracion_minutos"`
	Notes                 string          `json:"notas_detalle"`
}

// NewAppointment expects Client and Items.Service to be loaded.
func NewAppointment(ap *models.Appointment) AppointmentDTO {
	total := domain.Total(ap.Items)

	items := make([]ItemDTO, 0, len(ap.Items))
	for _, it := range ap.Items {
		items = append(items, NewItem(it))
	}

	return AppointmentDTO{
		ID:              ap.ID,
		ClientID:        ap.ClientID,
		ClientName:      ap.Client.FullName(),
		ClientPhone:     ap.Client.Phone,
		ClientEmail:     ap.Client.Email,
		ScheduledAt:     ap.ScheduledAt,
		EndsAt:          domain.EndTime(ap),
		Status:          ap.Status,
		StatusLabel:     domain.Status(ap.Status).Label(),
		Notes:           ap.Notes,
		Total:           total,
		TotalFormatted:  money.Format(total, 0),
		DurationMinutes: domain.DurationMinutes(ap.Items),
		Modifiable:      domain.CanBeModified(ap),
		ServiceCount:    len(ap.Items),
		Items:           items,
		CreatedByID:     ap.CreatedByID,
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}
}

func NewAppointments(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for i := range aps {
		out = append(out, NewAppointment(&aps[i]))
	}
	return out
}

func NewItem(it models.AppointmentItem) ItemDTO {
	return ItemDTO{
		ID:                    it.ID,
		AppointmentID:         it.AppointmentID,
		ServiceID:             it.ServiceID,
		ServiceName:           it.Service.Name,
		AgreedPrice:           it.AgreedPrice,
		Quantity:              it.Quantity,
		Discount:              it.Discount,
		UnitPriceWithDiscount: domain.UnitPriceWithDiscount(it),
		Subtotal:              domain.Subtotal(it),
		DurationMinutes:       it.Service.DurationSeconds * int64(it.Quantity) / 60,
		Notes:                 it.Notes,
	}
}

func NewItems(items []models.AppointmentItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, NewItem(it))
	}
	return out
}
