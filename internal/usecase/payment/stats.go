package payment

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
)

type Summary struct {
	Count   int64           `json:"total_pagos"`
	Total   decimal.Decimal `json:"monto_total"`
	Average decimal.Decimal `json:"promedio_pago"`
}

type Group struct {
	Count int64           `json:"cantidad"`
	Total decimal.Decimal `json:"monto_total"`
}

type Stats struct {
	Summary  Summary          `json:"resumen"`
	ByStatus map[string]Group `json:"por_estado"`
	ByMethod map[string]Group `json:"por_metodo"`
}

type PaymentStats struct {
	repo domain.Repository
}

func NewPaymentStats(repo domain.Repository) *PaymentStats {
	return &PaymentStats{repo: repo}
}

// Execute aggregates the payments matching the same filters as the list.
// Every status and method is present in the breakdown, zero when unused.
func (uc *PaymentStats) Execute(ctx context.Context, in ListPaymentsInput) (*Stats, error) {
	f, err := in.filter()
	if err != nil {
		return nil, err
	}

	byStatus, err := uc.repo.GroupBy(ctx, "status", f)
	if err != nil {
		return nil, err
	}
	byMethod, err := uc.repo.GroupBy(ctx, "method", f)
	if err != nil {
		return nil, err
	}

	out := &Stats{
		ByStatus: make(map[string]Group, len(domain.Statuses())),
		ByMethod: make(map[string]Group, len(domain.Methods())),
	}
	for _, s := range domain.Statuses() {
		out.ByStatus[string(s)] = Group{Total: decimal.Zero}
	}
	for _, m := range domain.Methods() {
		out.ByMethod[string(m)] = Group{Total: decimal.Zero}
	}

	out.Summary.Total = decimal.Zero
	for _, b := range byStatus {
		out.ByStatus[b.Key] = Group{Count: b.Count, Total: b.Total}
		out.Summary.Count += b.Count
		out.Summary.Total = out.Summary.Total.Add(b.Total)
	}
	for _, b := range byMethod {
		out.ByMethod[b.Key] = Group{Count: b.Count, Total: b.Total}
	}

	out.Summary.Average = decimal.Zero
	if out.Summary.Count > 0 {
		out.Summary.Average = out.Summary.Total.
			Div(decimal.NewFromInt(out.Summary.Count)).
			Round(2)
	}

	return out, nil
}
