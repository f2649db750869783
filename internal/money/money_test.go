package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in     string
		places int32
		want   string
	}{
		{"45000", 2, "$45,000.00"},
		{"45000", 0, "$45,000"},
		{"999", 2, "$999.00"},
		{"1234567.5", 2, "$1,234,567.50"},
		{"0", 0, "$0"},
		{"-2500", 0, "-$2,500"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(decimal.RequireFromString(tc.in), tc.places), tc.in)
	}
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(50000), decimal.NewFromInt(10))
	assert.True(t, decimal.NewFromInt(5000).Equal(got))
}

func TestCheckPrecision(t *testing.T) {
	for _, ok := range []string{"0", "45000", "99999999.99", "0.01", "1.50", "-25.5"} {
		assert.Empty(t, CheckPrecision(decimal.RequireFromString(ok), AmountDigits, Places), ok)
	}

	assert.Equal(t, "Asegúrese de que no haya más de 2 decimales.",
		CheckPrecision(decimal.RequireFromString("0.004"), AmountDigits, Places))
	assert.Equal(t, "Asegúrese de que no haya más de 8 dígitos antes del punto decimal.",
		CheckPrecision(decimal.RequireFromString("123456789012.5"), AmountDigits, Places))
	assert.NotEmpty(t, CheckPrecision(decimal.RequireFromString("100000000"), AmountDigits, Places))
	assert.NotEmpty(t, CheckPrecision(decimal.RequireFromString("12.345"), 5, 2))
}
