package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError - ошибки валидации по полям: json-имя -> сообщение
type ValidationError struct {
	Errors map[string]string
}

// Has - есть ли ошибка для поля (имя из json-тега)
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Errors[field]
	return ok
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator - обертка над go-playground/validator с правилами домена
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// в ошибках отдаем имена полей как в JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{validate: v}
}

// Validate возвращает *ValidationError, если структура не прошла проверку
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	messages := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages[fe.Field()] = v.getErrorMessage(fe)
	}
	return &ValidationError{Errors: messages}
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "is-creatable-role":
		return "Invalid role"
	case "is-urgency":
		return "Must be one of: low, medium, high"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
