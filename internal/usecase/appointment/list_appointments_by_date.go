package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// upcomingWindow is how far ahead "próximas" looks.
const upcomingWindow = 7 * 24 * time.Hour

var activeStatuses = []domain.Status{domain.StatusPending, domain.StatusConfirmed}

type ListAppointmentsByDate struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
		now:  time.Now,
	}
}

// Execute lists pending and confirmed appointments of one calendar day.
// A zero date means today in the salon timezone.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	tz string,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	loc := timezone.Location(tz)
	if date.IsZero() {
		date = uc.now().In(loc)
	}

	start, end := timezone.DayBounds(
		time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc),
	)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		start,
		end,
		activeStatuses,
	)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments, loc), nil
}

// Upcoming lists pending and confirmed appointments of the next seven days.
func (uc *ListAppointmentsByDate) Upcoming(
	ctx context.Context,
	tz string,
) ([]dto.AppointmentListDTO, error) {

	now := uc.now()

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		now,
		now.Add(upcomingWindow),
		activeStatuses,
	)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments, timezone.Location(tz)), nil
}
