package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const defaultCancelReason = "Sin motivo especificado"

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if !CanTransition(Status(ap.Status), StatusConfirmed) {
		return httperr.ErrBusiness("appointment_not_confirmable")
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

// Cancel appends the reason to the appointment notes.
func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if !CanTransition(Status(ap.Status), StatusCancelled) {
		return httperr.ErrBusiness("appointment_not_cancellable")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultCancelReason
	}

	ap.Status = string(StatusCancelled)
	ap.Notes = appendNote(ap.Notes, "Cancelada: "+reason)
	ap.CancelledAt = &now
	return nil
}

// Complete requires a confirmed appointment with at least one line item.
func Complete(ap *models.Appointment, itemCount int64, now time.Time) error {
	if !CanTransition(Status(ap.Status), StatusCompleted) {
		return httperr.ErrBusiness("appointment_not_completable")
	}
	if itemCount == 0 {
		return httperr.ErrBusiness("appointment_without_services")
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// CompleteByPayment closes the appointment after a full payment.
// It skips the transition table: a pending appointment completes too.
// Returns false when the appointment was already completed.
func CompleteByPayment(ap *models.Appointment, now time.Time) (bool, error) {
	switch Status(ap.Status) {
	case StatusCancelled:
		return false, httperr.ErrBusiness("appointment_cancelled")
	case StatusCompleted:
		return false, nil
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return true, nil
}

// ChangeStatus applies a status requested through a generic update.
func ChangeStatus(ap *models.Appointment, to Status, itemCount int64, now time.Time) error {
	from := Status(ap.Status)
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return httperr.ErrBusiness("invalid_transition")
	}

	switch to {
	case StatusConfirmed:
		return Confirm(ap)
	case StatusCancelled:
		return Cancel(ap, "", now)
	case StatusCompleted:
		return Complete(ap, itemCount, now)
	}
	return httperr.ErrBusiness("invalid_transition")
}

func appendNote(notes, line string) string {
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n" + line
}
