package models

import (
	"strings"
	"time"
)

// Cliente do salão, sem login.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"nombre"`
	LastName  string `gorm:"size:100" json:"apellido"`
	Phone     string `gorm:"size:20;index" json:"telefono"`
	Email     string `gorm:"size:254;index" json:"email"`
	Active    bool   `gorm:"default:true;index" json:"activo"`
	Notes     string `gorm:"size:250" json:"notas"`

	Appointments []Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"fecha_registro"`
	UpdatedAt time.Time `json:"fecha_actualizacion"`
}

func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
