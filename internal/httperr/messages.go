package httperr

var messages = map[string]string{
	"appointment_locked":           "No se puede modificar una cita completada o cancelada.",
	"invalid_transition":           "Transición de estado no permitida.",
	"appointment_not_confirmable":  "Solo se pueden confirmar citas pendientes.",
	"appointment_not_cancellable":  "Esta cita no puede ser cancelada.",
	"appointment_not_completable":  "Solo se pueden completar citas confirmadas.",
	"appointment_without_services": "No se puede completar una cita sin servicios.",
	"appointment_completed":        "No se puede eliminar una cita completada.",
	"appointment_cancelled":        "La cita está cancelada.",
	"payment_already_paid":         "El pago ya está marcado como pagado.",
	"payment_cancelled":            "No se puede marcar como pagado un pago cancelado.",
	"payment_not_paid":             "Solo se pueden reembolsar pagos completados.",
	"payment_not_pending":          "Solo se puede generar un checkout para pagos pendientes.",
	"service_has_active_bookings":  "No se puede desactivar un servicio con citas pendientes o confirmadas.",
	"service_in_use":               "No se puede eliminar un servicio asociado a citas.",
	"storage_not_configured":       "El almacenamiento de imágenes no está configurado.",
	"checkout_not_configured":      "El checkout de pagos no está configurado.",
	"invalid_image":                "La imagen no es válida.",
}

var entities = map[string]string{
	"client":           "Cliente no encontrado.",
	"service":          "Servicio no encontrado.",
	"appointment":      "Cita no encontrada.",
	"appointment_item": "Detalle de cita no encontrado.",
	"payment":          "Pago no encontrado.",
	"user":             "Usuario no encontrado.",
}

func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}

func notFoundMessage(entity string) string {
	if m, ok := entities[entity]; ok {
		return m
	}
	return "Recurso no encontrado."
}
