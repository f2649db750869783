package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type RemoveItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveItem(repo domain.Repository, audit *audit.Dispatcher) *RemoveItem {
	return &RemoveItem{repo: repo, audit: audit}
}

func (uc *RemoveItem) Execute(ctx context.Context, itemID uint, userID *uint) error {
	var appointmentID uint

	err := uc.repo.Transaction(ctx, func(repo domain.Repository) error {
		it, err := repo.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if err := domain.EnsureModifiable(&it.Appointment); err != nil {
			return err
		}
		appointmentID = it.AppointmentID
		return repo.DeleteItem(ctx, it.ID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_item_removed",
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{"detalle_id": itemID},
	})
	return nil
}

// ListItems lists line items filtered by appointment, service or status.
type ListItems struct {
	repo domain.Repository
}

func NewListItems(repo domain.Repository) *ListItems {
	return &ListItems{repo: repo}
}

func (uc *ListItems) Execute(ctx context.Context, f domain.ItemFilter) ([]models.AppointmentItem, error) {
	return uc.repo.ListItems(ctx, f)
}

func (uc *ListItems) Get(ctx context.Context, id uint) (*models.AppointmentItem, error) {
	return uc.repo.GetItem(ctx, id)
}
