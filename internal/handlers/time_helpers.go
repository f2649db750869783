package handlers

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const defaultSalonName = "Mi Salón"

// --------------------------------------------------
// Timezone centralizado en la configuración del salón
// --------------------------------------------------

// loadSettings returns the single settings row, creating it with defaults
// on first use.
func loadSettings(ctx context.Context, db *gorm.DB, defaultTZ string) (*models.SalonSettings, error) {
	var s models.SalonSettings
	err := db.WithContext(ctx).Order("id ASC").First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !timezone.IsValid(defaultTZ) {
		defaultTZ = timezone.DefaultTimezone
	}
	s = models.SalonSettings{Name: defaultSalonName, Timezone: defaultTZ}
	if err := db.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func salonTimezone(ctx context.Context, db *gorm.DB, defaultTZ string) string {
	s, err := loadSettings(ctx, db, defaultTZ)
	if err != nil {
		return defaultTZ
	}
	return s.Timezone
}

// parseDateRange turns inclusive YYYY-MM-DD bounds into a [from, to) range
// in tz. Empty values stay nil.
func parseDateRange(tz, fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if fromStr != "" {
		t, err := timezone.ParseDate(tz, fromStr)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}

	if toStr != "" {
		t, err := timezone.ParseDate(tz, toStr)
		if err != nil {
			return nil, nil, err
		}
		end := t.AddDate(0, 0, 1)
		to = &end
	}

	return from, to, nil
}

// parseDateTime accepts RFC 3339 or a local "2006-01-02T15:04[:05]" in tz.
func parseDateTime(tz, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	loc := timezone.Location(tz)
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errInvalidDateTime
}

var errInvalidDateTime = errors.New("invalid datetime")
