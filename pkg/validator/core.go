package validator

import (
	"errors"
	"strings"
)

// FieldError describes one rejected field. Code is a stable machine-readable
// identifier such as "required"; Message is meant for people.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

// ValidationErrors is every FieldError produced by one Apply call.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidationFailed.Error()
	}

	var b strings.Builder
	b.WriteString(ErrValidationFailed.Error())
	for i, fe := range ve {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(fe.Field)
		b.WriteString(": ")
		b.WriteString(fe.Message)
	}
	return b.String()
}

// Is matches ErrValidationFailed.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// Has reports whether field was rejected.
func (ve ValidationErrors) Has(field string) bool {
	for _, fe := range ve {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Fields maps each rejected field to its first message.
func (ve ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, ok := fields[fe.Field]; !ok {
			fields[fe.Field] = fe.Message
		}
	}
	return fields
}

// Rule checks one value. It returns ok=false with the failure description
// when the value is rejected.
type Rule func() (fe FieldError, ok bool)

func rule(field, code, message string, valid func() bool) Rule {
	return func() (FieldError, bool) {
		if valid() {
			return FieldError{}, true
		}
		return FieldError{Field: field, Code: code, Message: message}, false
	}
}

// Apply runs every rule and returns ValidationErrors when any fails, nil otherwise.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if fe, ok := r(); !ok {
			errs = append(errs, fe)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AsValidationErrors unwraps ValidationErrors from err.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func IsValidationError(err error) bool {
	_, ok := AsValidationErrors(err)
	return ok
}
