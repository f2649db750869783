package appointment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// UpdateItemInput carries only the fields being changed.
type UpdateItemInput struct {
	ID          uint
	ServiceID   *uint
	AgreedPrice *decimal.Decimal
	Quantity    *int
	Discount    *decimal.Decimal
	Notes       *string
	UserID      *uint
}

type UpdateItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateItem(repo domain.Repository, audit *audit.Dispatcher) *UpdateItem {
	return &UpdateItem{repo: repo, audit: audit}
}

func (uc *UpdateItem) Execute(
	ctx context.Context,
	in UpdateItemInput,
) (*models.AppointmentItem, error) {

	var updated *models.AppointmentItem

	err := uc.repo.Transaction(ctx, func(repo domain.Repository) error {
		it, err := repo.GetItem(ctx, in.ID)
		if err != nil {
			return err
		}
		if err := domain.EnsureModifiable(&it.Appointment); err != nil {
			return err
		}

		fe := httperr.FieldErrors{}

		if in.ServiceID != nil && *in.ServiceID != it.ServiceID {
			service, err := repo.GetService(ctx, *in.ServiceID)
			switch {
			case httperr.IsNotFound(err):
				fe.Add("servicio_id", "Servicio no encontrado.")
			case err != nil:
				return err
			case !service.Active:
				fe.Add("servicio_id", "El servicio no está activo.")
			default:
				exists, err := repo.ItemExists(ctx, it.AppointmentID, service.ID, it.ID)
				if err != nil {
					return err
				}
				if exists {
					fe.Add("servicio_id", duplicateItemMsg)
				}
				it.ServiceID = service.ID
				it.Service = *service
			}
		}

		if in.AgreedPrice != nil {
			it.AgreedPrice = *in.AgreedPrice
			if it.AgreedPrice.IsZero() {
				it.AgreedPrice = it.Service.Price
			}
		}
		if in.Quantity != nil {
			it.Quantity = *in.Quantity
		}
		if in.Discount != nil {
			it.Discount = *in.Discount
		}
		if in.Notes != nil {
			it.Notes = *in.Notes
		}

		fe.Merge(domain.ValidateItem(it.AgreedPrice, it.Quantity, it.Discount))
		if err := fe.Err(); err != nil {
			return err
		}

		if err := repo.UpdateItem(ctx, it); err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrField("servicio_id", duplicateItemMsg)
			}
			return err
		}

		updated, err = repo.GetItem(ctx, it.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_item_updated",
		Entity:   "appointment",
		EntityID: &updated.AppointmentID,
		Metadata: map[string]any{
			"detalle_id":         updated.ID,
			"cantidad_servicios": updated.Quantity,
			"descuento":          updated.Discount.String(),
		},
	})

	return updated, nil
}

// ApplyDiscount sets the discount percentage of one line.
func (uc *UpdateItem) ApplyDiscount(
	ctx context.Context,
	itemID uint,
	discount decimal.Decimal,
	userID *uint,
) (*models.AppointmentItem, error) {
	return uc.Execute(ctx, UpdateItemInput{ID: itemID, Discount: &discount, UserID: userID})
}

// UpdateQuantity sets how many times the service is performed.
func (uc *UpdateItem) UpdateQuantity(
	ctx context.Context,
	itemID uint,
	quantity int,
	userID *uint,
) (*models.AppointmentItem, error) {
	return uc.Execute(ctx, UpdateItemInput{ID: itemID, Quantity: &quantity, UserID: userID})
}
