package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	msgPastDate      = "La fecha y hora de la cita debe ser en el futuro."
	msgInvalidStatus = "Estado de cita inválido."
)

// checkClient records a field error when the client is missing or inactive.
func checkClient(ctx context.Context, repo domain.Repository, clientID uint, fe httperr.FieldErrors) error {
	if clientID == 0 {
		fe.Add("cliente_id", "Este campo es obligatorio.")
		return nil
	}

	client, err := repo.GetClient(ctx, clientID)
	if httperr.IsNotFound(err) {
		fe.Add("cliente_id", "Cliente no encontrado.")
		return nil
	}
	if err != nil {
		return err
	}

	if !client.Active {
		fe.Add("cliente_id", "No se puede agendar cita para un cliente inactivo.")
	}
	return nil
}
