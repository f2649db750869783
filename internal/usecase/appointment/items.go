package appointment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ItemInput describes one service line. A nil or zero AgreedPrice takes the
// catalog price.
type ItemInput struct {
	ServiceID   uint
	AgreedPrice *decimal.Decimal
	Quantity    int
	Discount    decimal.Decimal
	Notes       string
}

const duplicateItemMsg = "Este servicio ya está agregado a la cita."

// buildItem validates in against ap and returns the row to insert.
// Field errors are keyed with prefix (e.g. "detalles.0.").
func buildItem(
	ctx context.Context,
	repo domain.Repository,
	ap *models.Appointment,
	in ItemInput,
	prefix string,
) (*models.AppointmentItem, error) {

	fe := httperr.FieldErrors{}

	service, err := repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if httperr.IsNotFound(err) {
			fe.Add(prefix+"servicio_id", "Servicio no encontrado.")
			return nil, fe
		}
		return nil, err
	}
	if !service.Active {
		fe.Add(prefix+"servicio_id", "El servicio no está activo.")
	}

	exists, err := repo.ItemExists(ctx, ap.ID, service.ID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		fe.Add(prefix+"servicio_id", duplicateItemMsg)
	}

	price := service.Price
	if in.AgreedPrice != nil && !in.AgreedPrice.IsZero() {
		price = *in.AgreedPrice
	}

	for field, msgs := range domain.ValidateItem(price, in.Quantity, in.Discount) {
		for _, m := range msgs {
			fe.Add(prefix+field, m)
		}
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	return &models.AppointmentItem{
		AppointmentID: ap.ID,
		ServiceID:     service.ID,
		AgreedPrice:   price,
		Quantity:      in.Quantity,
		Discount:      in.Discount,
		Notes:         in.Notes,
	}, nil
}

// insertItem maps a unique violation on (appointment, service) to a field error.
func insertItem(ctx context.Context, repo domain.Repository, it *models.AppointmentItem, prefix string) error {
	if err := repo.CreateItem(ctx, it); err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrField(prefix+"servicio_id", duplicateItemMsg)
		}
		return err
	}
	return nil
}

func itemPrefix(i int) string {
	return fmt.Sprintf("detalles.%d.", i)
}
