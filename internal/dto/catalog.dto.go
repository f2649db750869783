package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
)

type ServiceDTO struct {
	ID                uint            `json:"id"`
	Name              string          `json:"nombre_servicio"`
	Price             decimal.Decimal `json:"precio"`
	PriceFormatted    string          `json:"precio_formateado"`
	Description       string          `json:"descripcion"`
	Duration          string          `json:"duracion_estimada"`
	DurationMinutes   int64           `json:"duracion_en_minutos"`
	DurationFormatted string          `json:"duracion_estimada_horas"`
	Active            bool            `json:"activo"`
	Category          string          `json:"categoria"`
	ImageURL          string          `json:"imagen_url"`
	CreatedAt         time.Time       `json:"fecha_creacion"`
	UpdatedAt         time.Time       `json:"fecha_actualizacion"`
}

func NewService(s models.Service) ServiceDTO {
	minutes := catalog.Minutes(s.DurationSeconds)
	return ServiceDTO{
		ID:                s.ID,
		Name:              s.Name,
		Price:             s.Price,
		PriceFormatted:    money.Format(s.Price, 2),
		Description:       s.Description,
		Duration:          catalog.FormatDuration(s.DurationSeconds),
		DurationMinutes:   minutes,
		DurationFormatted: catalog.HumanDuration(minutes),
		Active:            s.Active,
		Category:          s.Category,
		ImageURL:          s.ImageURL,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func NewServices(in []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(in))
	for _, s := range in {
		out = append(out, NewService(s))
	}
	return out
}

type ClientDTO struct {
	models.Client
	FullName string `json:"nombre_completo"`
}

func NewClient(c models.Client) ClientDTO {
	return ClientDTO{Client: c, FullName: c.FullName()}
}

func NewClients(in []models.Client) []ClientDTO {
	out := make([]ClientDTO, 0, len(in))
	for _, c := range in {
		out = append(out, NewClient(c))
	}
	return out
}
