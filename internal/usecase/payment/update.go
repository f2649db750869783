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

// UpdatePaymentInput carries only the fields being changed.
type UpdatePaymentInput struct {
	ID            uint
	AppointmentID *uint
	PaidAt        *time.Time
	Amount        *decimal.Decimal
	Method        *string
	Status        *string
	Reference     *string
	Notes         *string
	UserID        *uint
}

type UpdatePayment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewUpdatePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *UpdatePayment {
	return &UpdatePayment{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		now:     time.Now,
	}
}

// Execute edits a payment. Cancelled payments are read-only and a paid
// payment only leaves PAGADO through a refund.
func (uc *UpdatePayment) Execute(
	ctx context.Context,
	in UpdatePaymentInput,
) (*models.Payment, error) {

	var (
		updated    *models.Payment
		becamePaid bool
		completed  bool
	)

	err := uc.repo.Transaction(ctx, func(repo domain.Repository) error {
		p, err := repo.GetPayment(ctx, in.ID)
		if err != nil {
			return err
		}

		current := domain.Status(p.Status)
		if current == domain.StatusCancelled {
			return httperr.ErrBusiness("payment_cancelled")
		}

		fe := httperr.FieldErrors{}

		moved := in.AppointmentID != nil && *in.AppointmentID != p.AppointmentID
		if moved && current == domain.StatusPaid {
			fe.Add("cita_id", msgPaidMove)
		} else if moved {
			ap, err := repo.GetAppointment(ctx, *in.AppointmentID)
			switch {
			case httperr.IsNotFound(err):
				fe.Add("cita_id", "Cita no encontrada.")
			case err != nil:
				return err
			case apdomain.Status(ap.Status) == apdomain.StatusCancelled:
				fe.Add("cita_id", "No se pueden registrar pagos para citas canceladas.")
			default:
				p.AppointmentID = ap.ID
			}
		}

		if in.Amount != nil {
			if err := domain.ValidateAmount(*in.Amount); err != nil {
				fe.Merge(mustFields(err))
			}
			p.Amount = *in.Amount
		}

		if in.Method != nil {
			m, ok := domain.ParseMethod(*in.Method)
			if !ok {
				fe.Add("metodo_pago", msgInvalidMethod)
			}
			p.Method = string(m)
		}

		target := current
		if in.Status != nil {
			s, ok := domain.ParseStatus(*in.Status)
			if !ok {
				fe.Add("estado_pago", msgInvalidStatus)
			}
			target = s
		}

		if err := fe.Err(); err != nil {
			return err
		}

		if current == domain.StatusPaid && target != domain.StatusPaid {
			return httperr.ErrBusiness("payment_already_paid")
		}

		if in.PaidAt != nil {
			p.PaidAt = in.PaidAt.UTC()
		}
		if in.Reference != nil {
			p.Reference = *in.Reference
		}
		if in.Notes != nil {
			p.Notes = *in.Notes
		}
		p.Status = string(target)

		if err := repo.UpdatePayment(ctx, p); err != nil {
			return err
		}

		if current != domain.StatusPaid && target == domain.StatusPaid {
			becamePaid = true
			if completed, err = maybeCompleteAppointment(ctx, repo, p, uc.now()); err != nil {
				return err
			}
		}

		updated, err = repo.GetPayment(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if becamePaid {
		uc.metrics.PaymentRecorded(updated.Method, updated.Status)
		for _, ev := range paidEvents(updated, in.UserID, completed) {
			uc.audit.Dispatch(ev)
		}
	}
	if completed {
		uc.metrics.AppointmentTransition(string(apdomain.StatusCompleted))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "payment_updated",
		Entity:   "payment",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"estado_pago": updated.Status,
			"monto_total": updated.Amount.String(),
		},
	})

	return updated, nil
}
