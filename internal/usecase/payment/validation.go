package payment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

const (
	msgInvalidMethod = "Método de pago inválido."
	msgInvalidStatus = "Estado de pago inválido."
	msgPaidMove      = "Un pago ya pagado no puede moverse a otra cita."
)

func mustFields(err error) httperr.FieldErrors {
	fe, _ := httperr.AsFieldErrors(err)
	return fe
}
