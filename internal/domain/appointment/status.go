package appointment

import (
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDIENTE"
	StatusConfirmed Status = "CONFIRMADA"
	StatusCancelled Status = "CANCELADA"
	StatusCompleted Status = "COMPLETADA"
)

var labels = map[Status]string{
	StatusPending:   "Pendiente",
	StatusConfirmed: "Confirmada",
	StatusCancelled: "Cancelada",
	StatusCompleted: "Completada",
}

// transitions lists, for each status, the statuses it may move to.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}
}

// ParseStatus accepts any letter case.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := labels[s]
	return s, ok
}

func (s Status) Label() string {
	return labels[s]
}

// IsFinal reports whether no further change is allowed.
func (s Status) IsFinal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Validations
// ===============================

// CanBeModified is the single gate for every mutation of an appointment
// and its line items.
func CanBeModified(ap *models.Appointment) bool {
	return !Status(ap.Status).IsFinal()
}

func EnsureModifiable(ap *models.Appointment) error {
	if !CanBeModified(ap) {
		return httperr.ErrBusiness("appointment_locked")
	}
	return nil
}
