package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListFilter struct {
	Statuses []Status
	From     *time.Time
	To       *time.Time
	ClientID uint
	Query    string
	OrderBy  string

	Limit  int
	Offset int
}

type ItemFilter struct {
	AppointmentID uint
	ServiceID     uint
	Status        Status
}

type Repository interface {
	// Transaction runs fn with a repository bound to one database transaction.
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// -------- Client / Service --------
	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// GetAppointment loads Client and Items with their Service.
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// DeleteAppointment removes the appointment with its items and payments.
	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, int64, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
		statuses []Status,
	) ([]models.Appointment, error)

	// -------- Line items --------
	CountItems(
		ctx context.Context,
		appointmentID uint,
	) (int64, error)

	// GetItem loads Appointment and Service.
	GetItem(
		ctx context.Context,
		id uint,
	) (*models.AppointmentItem, error)

	ItemExists(
		ctx context.Context,
		appointmentID uint,
		serviceID uint,
		excludeID uint,
	) (bool, error)

	CreateItem(
		ctx context.Context,
		it *models.AppointmentItem,
	) error

	UpdateItem(
		ctx context.Context,
		it *models.AppointmentItem,
	) error

	DeleteItem(
		ctx context.Context,
		id uint,
	) error

	ListItems(
		ctx context.Context,
		f ItemFilter,
	) ([]models.AppointmentItem, error)
}
