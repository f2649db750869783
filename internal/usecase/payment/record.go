package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RecordPaymentInput struct {
	AppointmentID uint
	PaidAt        *time.Time
	Amount        decimal.Decimal
	Method        string
	Status        string
	Reference     string
	Notes         string
	CreatedBy     *uint
}

// ======================================================
// USE CASE
// ======================================================

type RecordPayment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewRecordPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *RecordPayment {
	return &RecordPayment{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		now:     time.Now,
	}
}

func (uc *RecordPayment) Execute(
	ctx context.Context,
	in RecordPaymentInput,
) (*models.Payment, error) {

	// --------------------------------------------------
	// 1️⃣ Campos
	// --------------------------------------------------
	fe := httperr.FieldErrors{}

	if err := domain.ValidateAmount(in.Amount); err != nil {
		fe.Merge(mustFields(err))
	}

	method, ok := domain.ParseMethod(in.Method)
	if !ok {
		fe.Add("metodo_pago", msgInvalidMethod)
	}

	status := domain.StatusPending
	if in.Status != "" {
		s, ok := domain.ParseStatus(in.Status)
		if !ok {
			fe.Add("estado_pago", msgInvalidStatus)
		}
		status = s
	}

	if in.AppointmentID == 0 {
		fe.Add("cita_id", "Este campo es obligatorio.")
	}

	if err := fe.Err(); err != nil {
		return nil, err
	}

	now := uc.now()
	paidAt := now.UTC()
	if in.PaidAt != nil {
		paidAt = in.PaidAt.UTC()
	}

	// --------------------------------------------------
	// 2️⃣ Pago + efecto sobre la cita (una transacción)
	// --------------------------------------------------
	p := &models.Payment{
		AppointmentID: in.AppointmentID,
		PaidAt:        paidAt,
		Amount:        in.Amount,
		Method:        string(method),
		Status:        string(status),
		Reference:     in.Reference,
		Notes:         in.Notes,
		CreatedByID:   in.CreatedBy,
	}

	var (
		created   *models.Payment
		completed bool
	)

	err := uc.repo.Transaction(ctx, func(repo domain.Repository) error {
		ap, err := repo.GetAppointment(ctx, in.AppointmentID)
		if httperr.IsNotFound(err) {
			return httperr.ErrField("cita_id", "Cita no encontrada.")
		}
		if err != nil {
			return err
		}
		if apdomain.Status(ap.Status) == apdomain.StatusCancelled {
			return httperr.ErrField("cita_id", "No se pueden registrar pagos para citas canceladas.")
		}

		if err := repo.CreatePayment(ctx, p); err != nil {
			return err
		}

		if status == domain.StatusPaid {
			if completed, err = maybeCompleteAppointment(ctx, repo, p, now); err != nil {
				return err
			}
		}

		created, err = repo.GetPayment(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Auditoría + métricas
	// --------------------------------------------------
	uc.metrics.PaymentRecorded(created.Method, created.Status)
	if completed {
		uc.metrics.AppointmentTransition(string(apdomain.StatusCompleted))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.CreatedBy,
		Action:   "payment_created",
		Entity:   "payment",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"cita_id":     created.AppointmentID,
			"monto_total": created.Amount.String(),
			"estado_pago": created.Status,
		},
	})
	if status == domain.StatusPaid {
		for _, ev := range paidEvents(created, in.CreatedBy, completed) {
			uc.audit.Dispatch(ev)
		}
	}

	return created, nil
}
