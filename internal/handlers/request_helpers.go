package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// parseID reads a positive numeric path parameter. On failure it writes
// the 404 and returns false.
func parseID(c *gin.Context, name, entity string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.ErrNotFound(entity))
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into dst and runs the struct validators.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "JSON inválido.")
		return false
	}
	if err := validators.Validate(dst); err != nil {
		httperr.Respond(c, err)
		return false
	}
	return true
}

// queryBool understands true/false/1/0; anything else is "not set".
func queryBool(c *gin.Context, key string) *bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

func queryUint(c *gin.Context, key string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(c.Query(key)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// queryDecimal ignores malformed values.
func queryDecimal(c *gin.Context, key string) *decimal.Decimal {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

// orderBy resolves "?ordering=field" or "-field" against a whitelist.
func orderBy(key string, columns map[string]string, fallback string) string {
	key = strings.TrimSpace(key)
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

func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(entity)
	}
	return err
}

func mustFieldErrors(err error) httperr.FieldErrors {
	if fe, ok := httperr.AsFieldErrors(err); ok {
		return fe
	}
	return httperr.FieldErrors{}
}
