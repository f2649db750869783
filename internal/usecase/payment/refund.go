package payment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Refund struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewRefund(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *Refund {
	return &Refund{repo: repo, audit: audit, metrics: metrics}
}

// Execute leaves the appointment untouched.
func (uc *Refund) Execute(
	ctx context.Context,
	paymentID uint,
	reason string,
	userID *uint,
) (*models.Payment, error) {

	p, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Refund(p, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.metrics.PaymentRecorded(p.Method, p.Status)
	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "payment_refunded",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"monto_reembolsado": p.Amount.String(),
			"motivo":            reason,
		},
	})

	return p, nil
}
