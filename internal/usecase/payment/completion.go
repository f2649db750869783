package payment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// maybeCompleteAppointment runs after a payment was persisted as PAGADO.
// It must be called with the transactional repository so both writes commit
// together. A payment covering the appointment total completes it, even from
// PENDIENTE. Returns whether the appointment changed.
func maybeCompleteAppointment(
	ctx context.Context,
	repo domain.Repository,
	p *models.Payment,
	now time.Time,
) (bool, error) {

	ap, err := repo.GetAppointment(ctx, p.AppointmentID)
	if err != nil {
		return false, err
	}

	if apdomain.Status(ap.Status) == apdomain.StatusCancelled {
		return false, httperr.ErrBusiness("appointment_cancelled")
	}

	total := apdomain.Total(ap.Items)
	if !domain.IsFullPayment(p.Amount, total) {
		return false, nil
	}

	changed, err := apdomain.CompleteByPayment(ap, now)
	if err != nil || !changed {
		return false, err
	}

	if err := repo.UpdateAppointment(ctx, ap); err != nil {
		return false, err
	}

	logging.FromContext(ctx).Info("appointment_completed_by_payment",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("payment_id", p.ID),
		zap.String("amount", p.Amount.String()),
		zap.String("total", total.String()),
	)
	return true, nil
}

// paidEvents are dispatched once the transaction committed.
func paidEvents(p *models.Payment, userID *uint, completed bool) []audit.Event {
	events := []audit.Event{{
		UserID:   userID,
		Action:   "payment_paid",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"cita_id":     p.AppointmentID,
			"monto_total": p.Amount.String(),
			"metodo_pago": p.Method,
		},
	}}

	if completed {
		appointmentID := p.AppointmentID
		events = append(events, audit.Event{
			UserID:   userID,
			Action:   "appointment_completed_by_payment",
			Entity:   "appointment",
			EntityID: &appointmentID,
			Metadata: map[string]any{"pago_id": p.ID},
		})
	}
	return events
}
