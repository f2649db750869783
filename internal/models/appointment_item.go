package models

import "github.com/shopspring/decimal"

// AppointmentItem is one service line of an appointment (DetalleCita).
type AppointmentItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"not null;uniqueIndex:idx_item_appointment_service" json:"cita_id"`
	Appointment   Appointment `json:"-"`

	ServiceID uint    `gorm:"not null;uniqueIndex:idx_item_appointment_service;index" json:"servicio_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	AgreedPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio_acordado"`
	Quantity    int             `gorm:"not null;default:1" json:"cantidad_servicios"`
	Discount    decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"descuento"`
	Notes       string          `gorm:"type:text" json:"notas_detalle"`
}
