package appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
)

var maxDiscount = decimal.NewFromInt(100)

// descuento is numeric(5,2).
const discountDigits = 5

// Subtotal = price * qty - price * qty * discount / 100.
func Subtotal(it models.AppointmentItem) decimal.Decimal {
	gross := it.AgreedPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
	return gross.Sub(money.Percent(gross, it.Discount))
}

func UnitPriceWithDiscount(it models.AppointmentItem) decimal.Decimal {
	return it.AgreedPrice.Sub(money.Percent(it.AgreedPrice, it.Discount))
}

// Total is zero for an appointment without items.
func Total(items []models.AppointmentItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(Subtotal(it))
	}
	return total
}

// DurationMinutes expects Service to be loaded on every item.
func DurationMinutes(items []models.AppointmentItem) int64 {
	var seconds int64
	for _, it := range items {
		seconds += it.Service.DurationSeconds * int64(it.Quantity)
	}
	return seconds / 60
}

// EndTime is the expected finishing time given the loaded items.
func EndTime(ap *models.Appointment) time.Time {
	return ap.ScheduledAt.Add(time.Duration(DurationMinutes(ap.Items)) * time.Minute)
}

// ValidateItem checks the pricing inputs of a line item.
func ValidateItem(price decimal.Decimal, quantity int, discount decimal.Decimal) httperr.FieldErrors {
	fe := httperr.FieldErrors{}

	if price.IsNegative() {
		fe.Add("precio_acordado", "El precio debe ser mayor o igual a 0.")
	} else if msg := money.CheckPrecision(price, money.AmountDigits, money.Places); msg != "" {
		fe.Add("precio_acordado", msg)
	}
	if quantity < 1 {
		fe.Add("cantidad_servicios", "La cantidad de servicios debe ser mayor a 0.")
	}
	if discount.IsNegative() {
		fe.Add("descuento", "El descuento no puede ser negativo.")
	}
	if discount.GreaterThan(maxDiscount) {
		fe.Add("descuento", "El descuento no puede ser mayor al 100%.")
	} else if msg := money.CheckPrecision(discount, discountDigits, money.Places); msg != "" {
		fe.Add("descuento", msg)
	}

	return fe
}
