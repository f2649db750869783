package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
}

func TestDayBounds(t *testing.T) {
	d, err := ParseDate("America/Bogota", "2025-03-10")
	require.NoError(t, err)

	start, end := DayBounds(d.Add(15 * time.Hour))
	assert.Equal(t, d, start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds("America/Bogota", 2025, time.February)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.March, end.Month())
}
