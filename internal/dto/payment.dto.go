package dto

import (
	"time"

	"github.com/shopspring/decimal"

	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
)

type PaymentDTO struct {
	ID                uint            `json:"id"`
	AppointmentID     uint            `json:"cita_id"`
	AppointmentAt     time.Time       `json:"cita_fecha"`
	AppointmentStatus string          `json:"cita_estado"`
	ClientName        string          `json:"cliente_nombre"`
	PaidAt            time.Time       `json:"fecha_pago"`
	Amount            decimal.Decimal `json:"monto_total"`
	AmountFormatted   string          `json:"monto_formateado"`
	Method            string          `json:"metodo_pago"`
	MethodLabel       string          `json:"metodo_pago_display"`
	Status            string          `json:"estado_pago"`
	StatusLabel       string          `json:"estado_pago_display"`
	IsFullPayment     *bool           `json:"es_pago_completo,omitempty"`
	Reference         string          `json:"referencia_pago"`
	Notes             string          `json:"notas_pago"`
	CreatedByID       *uint           `json:"creado_por"`
	CreatedAt         time.Time       `json:"fecha_creacion"`
	UpdatedAt         time.Time       `json:"fecha_actualizacion"`
}

// NewPayment expects Appointment.Client to be loaded. When the appointment
// items are loaded too, es_pago_completo is filled in.
func NewPayment(p models.Payment) PaymentDTO {
	out := PaymentDTO{
		ID:                p.ID,
		AppointmentID:     p.AppointmentID,
		AppointmentAt:     p.Appointment.ScheduledAt,
		AppointmentStatus: p.Appointment.Status,
		ClientName:        p.Appointment.Client.FullName(),
		PaidAt:            p.PaidAt,
		Amount:            p.Amount,
		AmountFormatted:   money.Format(p.Amount, 0),
		Method:            p.Method,
		MethodLabel:       domain.Method(p.Method).Label(),
		Status:            p.Status,
		StatusLabel:       domain.Status(p.Status).Label(),
		Reference:         p.Reference,
		Notes:             p.Notes,
		CreatedByID:       p.CreatedByID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}

	if p.Appointment.Items != nil {
		full := domain.IsFullPayment(p.Amount, apdomain.Total(p.Appointment.Items))
		out.IsFullPayment = &full
	}
	return out
}

func NewPayments(in []models.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(in))
	for _, p := range in {
		out = append(out, NewPayment(p))
	}
	return out
}
