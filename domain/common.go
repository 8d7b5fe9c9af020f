package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	RoleUser = "user"
	//ROLE_ADMIN  = "admin"

	DateLayout = "2006-01-02"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// ValidationError is returned when an input document breaks its contract,
// for example an ingredient item without a name.
type ValidationError struct {
	Field  string
	Reason string
	Cause  error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError converts validator output into a ValidationError.
// prefix is prepended to the failing field, e.g. "items[2]".
func NewValidationError(prefix string, err error) *ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field())
		if prefix != "" {
			field = prefix + "." + field
		}
		return &ValidationError{Field: field, Reason: fe.Tag(), Cause: err}
	}
	return &ValidationError{Field: prefix, Reason: err.Error(), Cause: err}
}
