package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]int64{
		"01:30":    5400,
		"00:45":    2700,
		"01:30:00": 5400,
		"2:05:30":  7530,
		"24:00":    86400,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseDurationRejects(t *testing.T) {
	for _, in := range []string{"", "90", "00:00", "01:60", "01:10:75", "aa:10", "1:2:3:4", "-1:30"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, in)
	}
}

func TestParseDurationCapsAtOneDay(t *testing.T) {
	for _, in := range []string{"24:01", "25:00", "5124095576030432:00", "9223372036854775807:00"} {
		secs, err := ParseDuration(in)
		assert.EqualError(t, err, "La duración no puede superar 24 horas.", in)
		assert.Zero(t, secs, in)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "01:30:00", FormatDuration(5400))
	assert.Equal(t, int64(90), Minutes(5400))
	assert.Equal(t, "1h 30m", HumanDuration(90))
	assert.Equal(t, "45m", HumanDuration(45))
	assert.Equal(t, "2h", HumanDuration(120))
}
