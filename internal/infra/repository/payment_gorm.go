package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

var paymentOrder = map[string]string{
	"fecha_pago":     "payments.paid_at",
	"monto_total":    "payments.amount",
	"fecha_creacion": "payments.created_at",
}

var paymentGroupColumns = map[string]string{
	"status": "payments.status",
	"method": "payments.method",
}

func (r *PaymentGormRepository) Transaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PaymentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *PaymentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment")
	}
	return &ap, nil
}

func (r *PaymentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *PaymentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	p.PaidAt = p.PaidAt.UTC()
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *PaymentGormRepository) GetPayment(
	ctx context.Context,
	id uint,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Appointment.Client").
		Preload("Appointment.Items").
		First(&p, id).Error; err != nil {
		return nil, notFound(err, "payment")
	}
	return &p, nil
}

func (r *PaymentGormRepository) UpdatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	p.PaidAt = p.PaidAt.UTC()
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *PaymentGormRepository) DeletePayment(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "payment")
	}
	return nil
}

func (r *PaymentGormRepository) ListPayments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Payment, int64, error) {

	q := r.filtered(ctx, f)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Preload("Appointment.Client").
		Order(orderClause(f.OrderBy, paymentOrder, "payments.paid_at DESC"))
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var out []models.Payment
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PaymentGormRepository) GroupBy(
	ctx context.Context,
	column string,
	f domain.ListFilter,
) ([]domain.Bucket, error) {

	col, ok := paymentGroupColumns[column]
	if !ok {
		return nil, fmt.Errorf("unsupported payment grouping %q", column)
	}

	var rows []struct {
		Bucket string
		Cnt    int64
		Total  decimal.Decimal
	}
	if err := r.filtered(ctx, f).
		Select(col + " AS bucket, COUNT(*) AS cnt, COALESCE(SUM(payments.amount), 0) AS total").
		Group(col).
		Order(col).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Bucket, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Bucket{Key: row.Bucket, Count: row.Cnt, Total: row.Total})
	}
	return out, nil
}

func (r *PaymentGormRepository) filtered(ctx context.Context, f domain.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Joins("JOIN appointments ON appointments.id = payments.appointment_id").
		Joins("JOIN clients ON clients.id = appointments.client_id")

	if f.Status != "" {
		q = q.Where("payments.status = ?", string(f.Status))
	}
	if f.Method != "" {
		q = q.Where("payments.method = ?", string(f.Method))
	}
	if f.AppointmentID != 0 {
		q = q.Where("payments.appointment_id = ?", f.AppointmentID)
	}
	if f.ClientID != 0 {
		q = q.Where("appointments.client_id = ?", f.ClientID)
	}
	if f.From != nil {
		q = q.Where("payments.paid_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("payments.paid_at < ?", f.To.UTC())
	}
	if f.MinAmount != nil {
		q = q.Where("payments.amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("payments.amount <= ?", *f.MaxAmount)
	}
	if f.Query != "" {
		like := likePattern(f.Query)
		q = q.Where(
			"LOWER(payments.reference) LIKE ? OR LOWER(payments.notes) LIKE ? OR LOWER(clients.first_name) LIKE ? OR LOWER(clients.last_name) LIKE ?",
			like, like, like, like,
		)
	}
	return q
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
