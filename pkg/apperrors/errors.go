package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - ошибка, которую можно отдать клиенту.
// Err и Status в ответ не попадают.
type AppError struct {
	Code    ErrorCode   `json:"code"`
	Domain  string      `json:"domain"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`

	Err    error `json:"-"`
	Status int   `json:"-"`
}

func New(code ErrorCode, domain, message string, status int) *AppError {
	return &AppError{Code: code, Domain: domain, Message: message, Status: status}
}

func Wrap(err error, code ErrorCode, domain, message string, status int) *AppError {
	return New(code, domain, message, status).WithError(err)
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s/%s: %s", e.Domain, e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is - копии из WithDetails / WithError равны исходной ошибке
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Domain == t.Domain && e.Message == t.Message
}

// WithDetails возвращает копию: предопределенные ошибки общие для всех запросов
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithError возвращает копию с причиной
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// DatabaseError - сообщение для клиента, причина остается в логах
func DatabaseError(err error, message string) *AppError {
	return Wrap(err, CodeDatabaseError, "database", message, http.StatusInternalServerError)
}

func ValidationError(details interface{}) *AppError {
	return NewValidationError("Validation failed", details)
}

func NewValidationError(message string, details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", message, http.StatusBadRequest).WithDetails(details)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

func NewNotFoundError(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}
