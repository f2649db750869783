package payment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
)

type DeletePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeletePayment(repo domain.Repository, audit *audit.Dispatcher) *DeletePayment {
	return &DeletePayment{repo: repo, audit: audit}
}

func (uc *DeletePayment) Execute(ctx context.Context, paymentID uint, userID *uint) error {
	p, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeletePayment(ctx, p.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "payment_deleted",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"cita_id":     p.AppointmentID,
			"monto_total": p.Amount.String(),
			"estado_pago": p.Status,
		},
	})
	return nil
}
