package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListAppointmentsInput struct {
	Statuses []string
	From     *time.Time
	To       *time.Time
	ClientID uint
	Query    string
	OrderBy  string
	Limit    int
	Offset   int
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]models.Appointment, int64, error) {

	f := domain.ListFilter{
		From:     in.From,
		To:       in.To,
		ClientID: in.ClientID,
		Query:    in.Query,
		OrderBy:  in.OrderBy,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}

	for _, raw := range in.Statuses {
		s, ok := domain.ParseStatus(raw)
		if !ok {
			return nil, 0, httperr.ErrField("estado_cita", msgInvalidStatus)
		}
		f.Statuses = append(f.Statuses, s)
	}

	return uc.repo.ListAppointments(ctx, f)
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, id)
}
