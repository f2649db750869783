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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID    uint
	ScheduledAt time.Time
	Status      string
	Notes       string
	CreatedBy   *uint

	Items []ItemInput
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		now:     time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	fe := httperr.FieldErrors{}

	// --------------------------------------------------
	// 1️⃣ Fecha en el futuro
	// --------------------------------------------------
	if in.ScheduledAt.IsZero() {
		fe.Add("fecha_hora_cita", "Este campo es obligatorio.")
	} else if !in.ScheduledAt.After(uc.now()) {
		fe.Add("fecha_hora_cita", msgPastDate)
	}

	// --------------------------------------------------
	// 2️⃣ Cliente activo
	// --------------------------------------------------
	if err := checkClient(ctx, uc.repo, in.ClientID, fe); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Estado inicial
	// --------------------------------------------------
	status := domain.InitialStatus()
	if in.Status != "" {
		s, ok := domain.ParseStatus(in.Status)
		switch {
		case !ok:
			fe.Add("estado_cita", msgInvalidStatus)
		case s != domain.StatusPending && s != domain.StatusConfirmed:
			fe.Add("estado_cita", "Una cita nueva solo puede estar PENDIENTE o CONFIRMADA.")
		default:
			status = s
		}
	}

	if err := fe.Err(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Cita + detalles (una transacción)
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:    in.ClientID,
		ScheduledAt: in.ScheduledAt.UTC(),
		Status:      string(status),
		Notes:       in.Notes,
		CreatedByID: in.CreatedBy,
	}

	var created *models.Appointment
	err := uc.repo.Transaction(ctx, func(repo domain.Repository) error {
		if err := repo.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		itemErrs := httperr.FieldErrors{}
		for i, itemIn := range in.Items {
			it, err := buildItem(ctx, repo, ap, itemIn, itemPrefix(i))
			if fe, ok := httperr.AsFieldErrors(err); ok {
				itemErrs.Merge(fe)
				continue
			}
			if err != nil {
				return err
			}
			if err := insertItem(ctx, repo, it, itemPrefix(i)); err != nil {
				return err
			}
		}
		if err := itemErrs.Err(); err != nil {
			return err
		}

		var err error
		created, err = repo.GetAppointment(ctx, ap.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoría
	// --------------------------------------------------
	uc.metrics.AppointmentTransition(created.Status)
	uc.audit.Dispatch(audit.Event{
		UserID:   in.CreatedBy,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"cliente_id":      created.ClientID,
			"estado_cita":     created.Status,
			"detalles":        len(created.Items),
			"fecha_hora_cita": created.ScheduledAt,
		},
	})

	return created, nil
}
