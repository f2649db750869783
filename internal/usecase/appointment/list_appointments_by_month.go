package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

// Execute lists every appointment of the month in the salon timezone,
// cancelled ones included so the calendar can show them.
func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	tz string,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	start, end := timezone.MonthBounds(tz, year, time.Month(month))

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		start,
		end,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments, timezone.Location(tz)), nil
}
