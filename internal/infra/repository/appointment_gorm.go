package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var appointmentOrder = map[string]string{
	"fecha_hora_cita": "appointments.scheduled_at",
	"fecha_creacion":  "appointments.created_at",
	"estado_cita":     "appointments.status",
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Client / Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, notFound(err, "client")
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, notFound(err, "service")
	}
	return &service, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ap.ScheduledAt = ap.ScheduledAt.UTC()
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withDetails(r.db.WithContext(ctx)).First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ap.ScheduledAt = ap.ScheduledAt.UTC()
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("appointment_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("appointment_id = ?", id).Delete(&models.AppointmentItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Appointment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound(gorm.ErrRecordNotFound, "appointment")
		}
		return nil
	})
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Joins("JOIN clients ON clients.id = appointments.client_id")

	if len(f.Statuses) > 0 {
		q = q.Where("appointments.status IN ?", statusStrings(f.Statuses))
	}
	if f.From != nil {
		q = q.Where("appointments.scheduled_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("appointments.scheduled_at < ?", f.To.UTC())
	}
	if f.ClientID != 0 {
		q = q.Where("appointments.client_id = ?", f.ClientID)
	}
	if f.Query != "" {
		like := likePattern(f.Query)
		q = q.Where(
			"LOWER(clients.first_name) LIKE ? OR LOWER(clients.last_name) LIKE ? OR clients.phone LIKE ? OR LOWER(appointments.notes) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = r.withDetails(q).
		Order(orderClause(f.OrderBy, appointmentOrder, "appointments.scheduled_at DESC"))
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		return nil, 0, err
	}
	return aps, total, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
	statuses []domain.Status,
) ([]models.Appointment, error) {

	q := r.withDetails(r.db.WithContext(ctx)).
		Where("scheduled_at >= ? AND scheduled_at < ?", start.UTC(), end.UTC())
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(statuses))
	}

	var aps []models.Appointment
	if err := q.Order("scheduled_at ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Line items
// --------------------------------------------------

func (r *AppointmentGormRepository) CountItems(
	ctx context.Context,
	appointmentID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AppointmentItem{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error
	return count, err
}

func (r *AppointmentGormRepository) GetItem(
	ctx context.Context,
	id uint,
) (*models.AppointmentItem, error) {

	var it models.AppointmentItem
	if err := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("Service").
		First(&it, id).Error; err != nil {
		return nil, notFound(err, "appointment_item")
	}
	return &it, nil
}

func (r *AppointmentGormRepository) ItemExists(
	ctx context.Context,
	appointmentID uint,
	serviceID uint,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.AppointmentItem{}).
		Where("appointment_id = ? AND service_id = ?", appointmentID, serviceID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateItem(
	ctx context.Context,
	it *models.AppointmentItem,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(it).Error
}

func (r *AppointmentGormRepository) UpdateItem(
	ctx context.Context,
	it *models.AppointmentItem,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(it).Error
}

func (r *AppointmentGormRepository) DeleteItem(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.AppointmentItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "appointment_item")
	}
	return nil
}

func (r *AppointmentGormRepository) ListItems(
	ctx context.Context,
	f domain.ItemFilter,
) ([]models.AppointmentItem, error) {

	q := r.db.WithContext(ctx).
		Model(&models.AppointmentItem{}).
		Preload("Service").
		Preload("Appointment")

	if f.AppointmentID != 0 {
		q = q.Where("appointment_items.appointment_id = ?", f.AppointmentID)
	}
	if f.ServiceID != 0 {
		q = q.Where("appointment_items.service_id = ?", f.ServiceID)
	}
	if f.Status != "" {
		q = q.Joins("JOIN appointments ON appointments.id = appointment_items.appointment_id").
			Where("appointments.status = ?", string(f.Status))
	}

	var items []models.AppointmentItem
	if err := q.Order("appointment_items.id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (r *AppointmentGormRepository) withDetails(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("appointment_items.id ASC")
		}).
		Preload("Items.Service")
}

func statusStrings(in []domain.Status) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
