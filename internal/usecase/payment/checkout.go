package payment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/checkout"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// CreateCheckout opens a hosted payment link for a pending payment and keeps
// the preference id as the payment reference.
type CreateCheckout struct {
	repo     domain.Repository
	provider checkout.Provider
	audit    *audit.Dispatcher
}

// NewCreateCheckout accepts a nil provider; Execute then reports
// checkout_not_configured.
func NewCreateCheckout(
	repo domain.Repository,
	provider checkout.Provider,
	audit *audit.Dispatcher,
) *CreateCheckout {
	return &CreateCheckout{repo: repo, provider: provider, audit: audit}
}

func (uc *CreateCheckout) Execute(
	ctx context.Context,
	paymentID uint,
	userID *uint,
) (*checkout.Result, error) {

	if uc.provider == nil {
		return nil, httperr.ErrUnavailable("checkout_not_configured")
	}

	p, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if domain.Status(p.Status) != domain.StatusPending {
		return nil, httperr.ErrBusiness("payment_not_pending")
	}

	res, err := uc.provider.CreatePreference(ctx, checkout.Request{
		ExternalReference: fmt.Sprintf("pago-%d", p.ID),
		Lines: []checkout.Line{{
			Title:     fmt.Sprintf("Cita #%d - %s", p.AppointmentID, p.Appointment.Client.FullName()),
			Quantity:  1,
			UnitPrice: p.Amount,
		}},
	})
	if err != nil {
		return nil, err
	}

	p.Reference = res.PreferenceID
	if err := uc.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "payment_checkout_created",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"preference_id": res.PreferenceID},
	})

	return res, nil
}
