package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
)

type HTTPError struct {
	Code    string      `json:"error_code"`
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Validation(c *gin.Context, fields FieldErrors) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    "validation_error",
		Message: "Datos inválidos.",
		Errors:  fields,
	})
}

// ======================================================
// RESPOND (boundary mapping)
// ======================================================

// Respond translates a use case error into the HTTP payload.
func Respond(c *gin.Context, err error) {
	if fe, ok := AsFieldErrors(err); ok {
		Validation(c, fe)
		return
	}

	var nf NotFoundError
	if errors.As(err, &nf) {
		NotFound(c, nf.Error(), notFoundMessage(nf.Entity))
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		status := be.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		msg := be.Message
		if msg == "" {
			msg = MessageFor(be.Code)
		}
		Write(c, status, be.Code, msg)
		return
	}

	if IsUniqueViolation(err) {
		Write(c, http.StatusConflict, "duplicate", "El registro ya existe.")
		return
	}

	_ = c.Error(err)
	logging.FromContext(c.Request.Context()).Error("unhandled error", zap.Error(err))
	Internal(c, "internal_error", "Error interno del servidor.")
}
