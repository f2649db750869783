package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index" json:"cliente_id"`
	Client   Client `json:"-"`

	ScheduledAt time.Time `gorm:"not null;index" json:"fecha_hora_cita"`
	Status      string    `gorm:"size:20;not null;default:'PENDIENTE';index" json:"estado_cita"`
	Notes       string    `gorm:"type:text" json:"observaciones"`

	CreatedByID *uint `json:"creado_por"`
	CreatedBy   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Items    []AppointmentItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Payments []Payment         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CancelledAt *time.Time `json:"fecha_cancelacion,omitempty"`
	CompletedAt *time.Time `json:"fecha_completada,omitempty"`

	CreatedAt time.Time `json:"fecha_creacion"`
	UpdatedAt time.Time `json:"fecha_actualizacion"`
}
