package httperr

import "errors"

// BusinessError é uma regra de negócio violada. Code vai no payload como error_code.
type BusinessError struct {
	Code    string
	Message string
	Status  int
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

// ErrConflict is a business error answered with 409.
func ErrConflict(code, message string) error {
	return BusinessError{Code: code, Message: message, Status: 409}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ======================================================
// NOT FOUND
// ======================================================

type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return e.Entity + "_not_found"
}

func ErrNotFound(entity string) error {
	return NotFoundError{Entity: entity}
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ErrUnavailable marks an optional integration that is not configured.
func ErrUnavailable(code string) error {
	return BusinessError{Code: code, Status: 503}
}
