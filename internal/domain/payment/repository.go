package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListFilter struct {
	Status        Status
	Method        Method
	AppointmentID uint
	ClientID      uint
	From          *time.Time
	To            *time.Time
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	Query         string
	OrderBy       string

	Limit  int
	Offset int
}

// Bucket is one group of a payment aggregate.
type Bucket struct {
	Key   string          `json:"key"`
	Count int64           `json:"cantidad"`
	Total decimal.Decimal `json:"total"`
}

type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// GetAppointment loads Items so the total can be computed.
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetPayment(
		ctx context.Context,
		id uint,
	) (*models.Payment, error)

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	DeletePayment(
		ctx context.Context,
		id uint,
	) error

	ListPayments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Payment, int64, error)

	// GroupBy aggregates the filtered payments by "status" or "method".
	GroupBy(
		ctx context.Context,
		column string,
		f ListFilter,
	) ([]Bucket, error)
}
