package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// AppointmentListDTO is the compact row used by the agenda views.
type AppointmentListDTO struct {
	ID           uint            `json:"id"`
	StartTime    time.Time       `json:"fecha_hora_cita"`
	EndTime      time.Time       `json:"fecha_hora_fin"`
	Status       string          `json:"estado_cita"`
	ClientName   string          `json:"cliente_nombre"`
	ServiceNames []string        `json:"servicios"`
	Total        decimal.Decimal `json:"monto_total"`
}

// NewAppointmentList renders times in loc.
func NewAppointmentList(appointments []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]

		names := make([]string, 0, len(ap.Items))
		for _, it := range ap.Items {
			names = append(names, it.Service.Name)
		}

		out = append(out, AppointmentListDTO{
			ID:           ap.ID,
			StartTime:    ap.ScheduledAt.In(loc),
			EndTime:      domain.EndTime(ap).In(loc),
			Status:       ap.Status,
			ClientName:   ap.Client.FullName(),
			ServiceNames: names,
			Total:        domain.Total(ap.Items),
		})
	}
	return out
}
