package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"not null;index" json:"cita_id"`
	Appointment   Appointment `json:"-"`

	PaidAt    time.Time       `gorm:"not null;index" json:"fecha_pago"`
	Amount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"monto_total"`
	Method    string          `gorm:"size:20;not null;index" json:"metodo_pago"`
	Status    string          `gorm:"size:20;not null;default:'PENDIENTE';index" json:"estado_pago"`
	Reference string          `gorm:"size:100" json:"referencia_pago"`
	Notes     string          `gorm:"type:text" json:"notas_pago"`

	CreatedByID *uint `json:"creado_por"`

	CreatedAt time.Time `json:"fecha_creacion"`
	UpdatedAt time.Time `json:"fecha_actualizacion"`
}
