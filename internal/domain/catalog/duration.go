package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errInvalidFormat = errors.New("Formato inválido. Use HH:MM o HH:MM:SS.")
	errTooLong       = errors.New("La duración no puede superar 24 horas.")
)

// MaxDurationSeconds caps a single service at one day.
const MaxDurationSeconds = 24 * 3600

// ParseDuration reads "HH:MM" or "HH:MM:SS" and returns seconds.
// Minutes and seconds must be below 60; the total must be in (0, 24h].
func ParseDuration(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("Este campo es obligatorio.")
	}

	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, errInvalidFormat
	}

	values := make([]int64, 3)
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, errInvalidFormat
		}
		values[i] = n
	}

	h, m, s := values[0], values[1], values[2]
	if m >= 60 {
		return 0, errors.New("Los minutos deben estar entre 0 y 59.")
	}
	if s >= 60 {
		return 0, errors.New("Los segundos deben estar entre 0 y 59.")
	}

	if h > MaxDurationSeconds/3600 {
		return 0, errTooLong
	}

	total := h*3600 + m*60 + s
	if total <= 0 {
		return 0, errors.New("La duración debe ser mayor a 0.")
	}
	if total > MaxDurationSeconds {
		return 0, errTooLong
	}
	return total, nil
}

// FormatDuration renders seconds as "HH:MM:SS".
func FormatDuration(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

func Minutes(seconds int64) int64 {
	return seconds / 60
}

// HumanDuration renders minutes as "1h 30m", "2h" or "45m".
func HumanDuration(minutes int64) string {
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
