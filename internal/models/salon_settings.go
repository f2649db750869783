package models

import "time"

// SalonSettings is a single-row table.
type SalonSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:200;not null" json:"nombre_salon"`
	Address     string `gorm:"type:text" json:"direccion"`
	Phone       string `gorm:"size:20" json:"telefono"`
	Email       string `gorm:"size:254" json:"email"`
	Description string `gorm:"type:text" json:"descripcion"`
	Timezone    string `gorm:"size:50;not null" json:"timezone"`

	CreatedAt time.Time `json:"fecha_creacion"`
	UpdatedAt time.Time `json:"fecha_actualizacion"`
}

func (SalonSettings) TableName() string {
	return "salon_settings"
}
