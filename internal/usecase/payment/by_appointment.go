package payment

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentTotals struct {
	Count   int             `json:"total_pagos"`
	Paid    decimal.Decimal `json:"total_pagado"`
	Pending decimal.Decimal `json:"total_pendiente"`
	Overall decimal.Decimal `json:"total_general"`
}

type PaymentsByAppointment struct {
	repo domain.Repository
}

func NewPaymentsByAppointment(repo domain.Repository) *PaymentsByAppointment {
	return &PaymentsByAppointment{repo: repo}
}

// Execute returns the payments of one appointment. Cancelled payments are
// listed but left out of every total.
func (uc *PaymentsByAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) ([]models.Payment, AppointmentTotals, error) {

	payments, _, err := uc.repo.ListPayments(ctx, domain.ListFilter{
		AppointmentID: appointmentID,
		OrderBy:       "fecha_pago",
	})
	if err != nil {
		return nil, AppointmentTotals{}, err
	}

	totals := AppointmentTotals{
		Count:   len(payments),
		Paid:    decimal.Zero,
		Pending: decimal.Zero,
	}
	for _, p := range payments {
		switch domain.Status(p.Status) {
		case domain.StatusPaid:
			totals.Paid = totals.Paid.Add(p.Amount)
		case domain.StatusPending:
			totals.Pending = totals.Pending.Add(p.Amount)
		}
	}
	totals.Overall = totals.Paid.Add(totals.Pending)

	return payments, totals, nil
}
