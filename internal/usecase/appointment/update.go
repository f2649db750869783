package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// UpdateAppointmentInput carries only the fields being changed.
type UpdateAppointmentInput struct {
	ID          uint
	ClientID    *uint
	ScheduledAt *time.Time
	Status      *string
	Notes       *string
	UserID      *uint
}

type UpdateAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		now:     time.Now,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	var (
		updated    *models.Appointment
		fromStatus string
	)

	err := uc.repo.Transaction(ctx, func(repo domain.Repository) error {
		ap, err := repo.GetAppointment(ctx, in.ID)
		if err != nil {
			return err
		}
		fromStatus = ap.Status

		if err := domain.EnsureModifiable(ap); err != nil {
			return err
		}

		now := uc.now()
		fe := httperr.FieldErrors{}

		if in.ClientID != nil && *in.ClientID != ap.ClientID {
			if err := checkClient(ctx, repo, *in.ClientID, fe); err != nil {
				return err
			}
			ap.ClientID = *in.ClientID
		}

		if in.ScheduledAt != nil && !in.ScheduledAt.Equal(ap.ScheduledAt) {
			if !in.ScheduledAt.After(now) {
				fe.Add("fecha_hora_cita", msgPastDate)
			}
			ap.ScheduledAt = in.ScheduledAt.UTC()
		}

		var target domain.Status
		if in.Status != nil {
			s, ok := domain.ParseStatus(*in.Status)
			if !ok {
				fe.Add("estado_cita", msgInvalidStatus)
			}
			target = s
		}

		if err := fe.Err(); err != nil {
			return err
		}

		if in.Notes != nil {
			ap.Notes = *in.Notes
		}

		if target != "" {
			items, err := repo.CountItems(ctx, ap.ID)
			if err != nil {
				return err
			}
			if err := domain.ChangeStatus(ap, target, items, now); err != nil {
				return err
			}
		}

		if err := repo.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		updated, err = repo.GetAppointment(ctx, ap.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if updated.Status != fromStatus {
		uc.metrics.AppointmentTransition(updated.Status)
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"estado_anterior": fromStatus,
			"estado_cita":     updated.Status,
		},
	})

	return updated, nil
}
