package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// AddItem adds a service line to an open appointment.
type AddItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddItem(repo domain.Repository, audit *audit.Dispatcher) *AddItem {
	return &AddItem{repo: repo, audit: audit}
}

func (uc *AddItem) Execute(
	ctx context.Context,
	appointmentID uint,
	in ItemInput,
	userID *uint,
) (*models.AppointmentItem, error) {

	var created *models.AppointmentItem

	err := uc.repo.Transaction(ctx, func(repo domain.Repository) error {
		ap, err := repo.GetAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if err := domain.EnsureModifiable(ap); err != nil {
			return err
		}

		it, err := buildItem(ctx, repo, ap, in, "")
		if err != nil {
			return err
		}
		if err := insertItem(ctx, repo, it, ""); err != nil {
			return err
		}

		created, err = repo.GetItem(ctx, it.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_item_added",
		Entity:   "appointment",
		EntityID: &created.AppointmentID,
		Metadata: map[string]any{
			"detalle_id":  created.ID,
			"servicio_id": created.ServiceID,
		},
	})

	return created, nil
}
