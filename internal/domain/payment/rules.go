package payment

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
)

// IsFullPayment reports whether amount covers the appointment total.
func IsFullPayment(amount, total decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(total)
}

func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return httperr.ErrField("monto_total", "El monto total debe ser mayor a cero.")
	}
	if msg := money.CheckPrecision(amount, money.AmountDigits, money.Places); msg != "" {
		return httperr.ErrField("monto_total", msg)
	}
	return nil
}

// MarkPaid moves a pending payment to paid.
func MarkPaid(p *models.Payment) error {
	switch Status(p.Status) {
	case StatusPaid:
		return httperr.ErrBusiness("payment_already_paid")
	case StatusCancelled:
		return httperr.ErrBusiness("payment_cancelled")
	}

	p.Status = string(StatusPaid)
	return nil
}

// Refund cancels a paid payment and records the reason in its notes.
func Refund(p *models.Payment, reason string) error {
	if Status(p.Status) != StatusPaid {
		return httperr.ErrBusiness("payment_not_paid")
	}

	p.Status = string(StatusCancelled)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil
	}

	line := "[REEMBOLSO] " + reason
	if strings.TrimSpace(p.Notes) == "" {
		p.Notes = line
	} else {
		p.Notes = p.Notes + "\n" + line
	}
	return nil
}
