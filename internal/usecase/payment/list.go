package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListPaymentsInput struct {
	Status        string
	Method        string
	AppointmentID uint
	ClientID      uint
	From          *time.Time
	To            *time.Time
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	Query         string
	OrderBy       string
	Limit         int
	Offset        int
}

// filter converts raw query values into a repository filter.
func (in ListPaymentsInput) filter() (domain.ListFilter, error) {
	f := domain.ListFilter{
		AppointmentID: in.AppointmentID,
		ClientID:      in.ClientID,
		From:          in.From,
		To:            in.To,
		MinAmount:     in.MinAmount,
		MaxAmount:     in.MaxAmount,
		Query:         in.Query,
		OrderBy:       in.OrderBy,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}

	fe := httperr.FieldErrors{}
	if in.Status != "" {
		s, ok := domain.ParseStatus(in.Status)
		if !ok {
			fe.Add("estado_pago", msgInvalidStatus)
		}
		f.Status = s
	}
	if in.Method != "" {
		m, ok := domain.ParseMethod(in.Method)
		if !ok {
			fe.Add("metodo_pago", msgInvalidMethod)
		}
		f.Method = m
	}
	return f, fe.Err()
}

type ListPayments struct {
	repo domain.Repository
}

func NewListPayments(repo domain.Repository) *ListPayments {
	return &ListPayments{repo: repo}
}

func (uc *ListPayments) Execute(
	ctx context.Context,
	in ListPaymentsInput,
) ([]models.Payment, int64, error) {

	f, err := in.filter()
	if err != nil {
		return nil, 0, err
	}
	return uc.repo.ListPayments(ctx, f)
}

func (uc *ListPayments) Get(ctx context.Context, id uint) (*models.Payment, error) {
	return uc.repo.GetPayment(ctx, id)
}
