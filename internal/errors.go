package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidID        ErrorCode = "INVALID_ID"

	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCodeDeleteFailed  ErrorCode = "DELETE_FAILED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeNotAuthorized      ErrorCode = "NOT_AUTHORIZED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// Is lets errors.Is match AppErrors by type and code, so sentinel values
// like ErrInvalidCredentials compare without pointer identity.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// NewNotFoundError reports a missing entity. Attribute and value are
// optional and only included when known, e.g. "User with id: 42 not found".
func NewNotFoundError(entity, attribute string, value interface{}) *AppError {
	msg := fmt.Sprintf("%s not found", entity)
	if attribute != "" && value != nil {
		msg = fmt.Sprintf("%s with %s: %v not found", entity, attribute, value)
	} else if value != nil {
		msg = fmt.Sprintf("%s with value: %v not found", entity, value)
	}
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       ErrCodeNotFound,
		Message:    msg,
		StatusCode: http.StatusNotFound,
	}
}

// NewAlreadyExistsError reports a uniqueness violation on an entity.
func NewAlreadyExistsError(entity, attribute string, value interface{}) *AppError {
	msg := fmt.Sprintf("%s with value %v already exists", entity, value)
	if attribute != "" {
		msg = fmt.Sprintf("%s with %s: %v already exists", entity, attribute, value)
	}
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       ErrCodeAlreadyExists,
		Message:    msg,
		StatusCode: http.StatusConflict,
	}
}

func NewDeleteFailedError(entity string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       ErrCodeDeleteFailed,
		Message:    fmt.Sprintf("error deleting %s", entity),
		StatusCode: http.StatusConflict,
	}
}

func NewAuthorizationError(reason string) *AppError {
	if reason == "" {
		reason = "not authorized"
	}
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       ErrCodeNotAuthorized,
		Message:    reason,
		StatusCode: http.StatusForbidden,
	}
}

func NewValidationError(field, reason string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    reason,
		StatusCode: http.StatusBadRequest,
		Details:    map[string]string{"field": field},
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	// Authentication failures never distinguish unknown user from wrong
	// password; both surface as the same invalid-credentials error.
	ErrInvalidCredentials = &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       ErrCodeInvalidCredentials,
		Message:    "invalid credentials",
		StatusCode: http.StatusUnauthorized,
	}
	ErrInvalidToken = &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       ErrCodeInvalidToken,
		Message:    "invalid token",
		StatusCode: http.StatusUnauthorized,
	}
	ErrNotAuthorized = &AppError{
		Type:       ErrorTypeForbidden,
		Code:       ErrCodeNotAuthorized,
		Message:    "not authorized",
		StatusCode: http.StatusForbidden,
	}
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Type == ErrorTypeNotFound
	}
	return false
}

func IsConflict(err error) bool {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Type == ErrorTypeConflict
	}
	return false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// ValidateEmailFormat performs the structural check applied when creating
// or updating users.
func ValidateEmailFormat(email string) error {
	if email == "" {
		return NewValidationError("email", "email field is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return NewValidationError("email", fmt.Sprintf("invalid email format: %s", email))
	}
	if !strings.Contains(email[at+1:], ".") {
		return NewValidationError("email", fmt.Sprintf("invalid email format: %s", email))
	}
	return nil
}
