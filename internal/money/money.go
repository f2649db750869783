package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Column precision of the money columns, numeric(10,2).
const (
	AmountDigits = 10
	Places       = 2
)

var hundred = decimal.NewFromInt(100)

// CheckPrecision returns a message when v does not fit a
// numeric(digits, places) column, or "" when it does.
func CheckPrecision(v decimal.Decimal, digits, places int32) string {
	if !v.Equal(v.Truncate(places)) {
		return fmt.Sprintf("Asegúrese de que no haya más de %d decimales.", places)
	}
	intDigits := digits - places
	if v.Abs().GreaterThanOrEqual(decimal.New(1, intDigits)) {
		return fmt.Sprintf("Asegúrese de que no haya más de %d dígitos antes del punto decimal.", intDigits)
	}
	return ""
}

// Percent returns d% of v.
func Percent(v, d decimal.Decimal) decimal.Decimal {
	return v.Mul(d).Div(hundred)
}

// Format renders v as "$45,000.00" with the given decimal places.
func Format(v decimal.Decimal, places int32) string {
	raw := v.StringFixed(places)

	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign = "-"
		raw = raw[1:]
	}

	intPart, frac := raw, ""
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		intPart, frac = raw[:i], raw[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + "$" + b.String() + frac
}
