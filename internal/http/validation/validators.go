package validation

// Package validation checks form input before it is sent to the backend.

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

// Validator returns an error message for an invalid value, or "".
type Validator func(v string) string

// Required rejects blank values and values longer than maxLen runes.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Email rejects values that are not a bare address (no display name).
func Email(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return "Enter a valid " + strings.ToLower(fieldName) + "."
		}
		return ""
	}
}

// OneOf accepts the empty value or exactly one of options. Run Canonical first
// to accept other spellings.
func OneOf(fieldName string, options ...string) Validator {
	return func(v string) string {
		if v == "" || slices.Contains(options, v) {
			return ""
		}
		return fmt.Sprintf("%s must be one of: %s.", fieldName, strings.Join(options, ", "))
	}
}

// Canonical returns the option v matches case-insensitively, or the trimmed v
// when none does.
func Canonical(v string, options ...string) string {
	v = strings.TrimSpace(v)
	for _, opt := range options {
		if strings.EqualFold(v, opt) {
			return opt
		}
	}
	return v
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	order  []string
	errors map[string]string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate runs validators against value, keeping only the first failure per field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if msg := v(value); msg != "" {
			fv.errors[field] = msg
			fv.order = append(fv.order, field)
			break
		}
	}
	return fv
}

// First returns the first failing field and its message.
func (fv *FieldValidator) First() (field, msg string, ok bool) {
	if len(fv.order) == 0 {
		return "", "", false
	}
	field = fv.order[0]
	return field, fv.errors[field], true
}
