package core

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrCategoryInUse      = errors.New("category is used by one or more transactions")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
)

// FieldError is a single validation failure bound to a form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors collects field failures so a form can show them all at once.
type ValidationErrors struct {
	Fields []FieldError
}

func (v *ValidationErrors) Add(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
}

// Merge appends the failures of other, if any.
func (v *ValidationErrors) Merge(other *ValidationErrors) {
	if other == nil {
		return
	}
	v.Fields = append(v.Fields, other.Fields...)
}

func (v *ValidationErrors) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

// For returns the first message recorded for field.
func (v *ValidationErrors) For(field string) string {
	if v == nil {
		return ""
	}
	for _, f := range v.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// OrNil returns v as an error, or nil when nothing was recorded.
func (v *ValidationErrors) OrNil() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into its ValidationErrors, if it carries one.
func AsValidation(err error) (*ValidationErrors, bool) {
	var v *ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
