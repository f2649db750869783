package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestIsFullPayment(t *testing.T) {
	total := decimal.NewFromInt(80000)

	assert.True(t, IsFullPayment(decimal.NewFromInt(80000), total))
	assert.True(t, IsFullPayment(decimal.NewFromInt(90000), total))
	assert.False(t, IsFullPayment(decimal.RequireFromString("79999.99"), total))
	assert.True(t, IsFullPayment(decimal.NewFromInt(1), decimal.Zero))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.NewFromInt(1)))

	for _, v := range []int64{0, -10} {
		fe, ok := httperr.AsFieldErrors(ValidateAmount(decimal.NewFromInt(v)))
		require.True(t, ok)
		assert.Contains(t, fe, "monto_total")
	}

	for _, v := range []string{"0.004", "123456789012.5"} {
		fe, ok := httperr.AsFieldErrors(ValidateAmount(decimal.RequireFromString(v)))
		require.True(t, ok, v)
		assert.Contains(t, fe, "monto_total", v)
	}
	assert.NoError(t, ValidateAmount(decimal.RequireFromString("99999999.99")))
}

func TestMarkPaid(t *testing.T) {
	p := &models.Payment{Status: string(StatusPending)}
	require.NoError(t, MarkPaid(p))
	assert.Equal(t, string(StatusPaid), p.Status)

	assert.True(t, httperr.IsBusiness(MarkPaid(p), "payment_already_paid"))
	assert.True(t, httperr.IsBusiness(MarkPaid(&models.Payment{Status: string(StatusCancelled)}), "payment_cancelled"))
}

func TestRefund(t *testing.T) {
	p := &models.Payment{Status: string(StatusPaid), Notes: "pago en caja"}
	require.NoError(t, Refund(p, "servicio insatisfactorio"))

	assert.Equal(t, string(StatusCancelled), p.Status)
	assert.Equal(t, "pago en caja\n[REEMBOLSO] servicio insatisfactorio", p.Notes)

	assert.True(t, httperr.IsBusiness(Refund(p, "x"), "payment_not_paid"))
}

func TestParseMethodAndStatus(t *testing.T) {
	m, ok := ParseMethod("tarjeta")
	assert.True(t, ok)
	assert.Equal(t, MethodCard, m)

	_, ok = ParseMethod("bitcoin")
	assert.False(t, ok)

	s, ok := ParseStatus(" pagado ")
	assert.True(t, ok)
	assert.Equal(t, StatusPaid, s)
}
