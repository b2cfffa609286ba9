package customErrors

import (
	"errors"
	"fmt"
)

const (
	ErrNotFound             = "NOT_FOUND"
	ErrInvalidInput         = "INVALID_INPUT"
	ErrAuth                 = "UNAUTHORIZED"
	ErrConflict             = "CONFLICT"
	ErrCategoryInUse        = "CATEGORY_IN_USE"
	ErrInsufficientFunds    = "INSUFFICIENT_FUNDS"
	ErrInsufficientHeadroom = "INSUFFICIENT_HEADROOM"
	ErrExternalService      = "EXTERNAL_SERVICE"
	ErrInternal             = "INTERNAL"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("code: %s, message: %s", e.Code, e.Message)
}

// CodeOf returns the code of err, or ErrInternal if err is not an ErrorResponse.
func CodeOf(err error) string {
	var appErr ErrorResponse
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}
