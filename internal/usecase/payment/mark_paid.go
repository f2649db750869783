package payment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type MarkPaidResult struct {
	Payment              *models.Payment
	PreviousStatus       string
	AppointmentCompleted bool
}

type MarkPaid struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewMarkPaid(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *MarkPaid {
	return &MarkPaid{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		now:     time.Now,
	}
}

func (uc *MarkPaid) Execute(
	ctx context.Context,
	paymentID uint,
	userID *uint,
) (*MarkPaidResult, error) {

	out := &MarkPaidResult{}

	err := uc.repo.Transaction(ctx, func(repo domain.Repository) error {
		p, err := repo.GetPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		out.PreviousStatus = p.Status

		if err := domain.MarkPaid(p); err != nil {
			return err
		}
		if err := repo.UpdatePayment(ctx, p); err != nil {
			return err
		}

		if out.AppointmentCompleted, err = maybeCompleteAppointment(ctx, repo, p, uc.now()); err != nil {
			return err
		}

		out.Payment, err = repo.GetPayment(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PaymentRecorded(out.Payment.Method, out.Payment.Status)
	if out.AppointmentCompleted {
		uc.metrics.AppointmentTransition(string(apdomain.StatusCompleted))
	}
	for _, ev := range paidEvents(out.Payment, userID, out.AppointmentCompleted) {
		uc.audit.Dispatch(ev)
	}

	return out, nil
}
