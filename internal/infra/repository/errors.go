package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// notFound maps gorm.ErrRecordNotFound to the domain not-found error.
func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(entity)
	}
	return err
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// orderClause resolves a "field" or "-field" sort key against a whitelist.
func orderClause(key string, columns map[string]string, fallback string) string {
	desc := strings.HasPrefix(key, "-")
	col, ok := columns[strings.TrimPrefix(key, "-")]
	if !ok {
		return fallback
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
