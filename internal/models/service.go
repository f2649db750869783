package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry. Duration is stored in seconds.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string          `gorm:"size:100;not null;uniqueIndex" json:"nombre_servicio"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio"`
	Description     string          `gorm:"type:text" json:"descripcion"`
	DurationSeconds int64           `gorm:"not null" json:"-"`
	Active          bool            `gorm:"default:true;index" json:"activo"`
	Category        string          `gorm:"size:50;index" json:"categoria"`
	ImageURL        string          `gorm:"size:500" json:"imagen_url"`

	CreatedAt time.Time `json:"fecha_creacion"`
	UpdatedAt time.Time `json:"fecha_actualizacion"`
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}
