// Package validation checks untyped request records and turns them into
// normalized domain inputs. Validators never panic on malformed input: they
// return a value or an error matching ErrInvalid.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"boardcamp/internal/domain"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is matched by every validation failure
var ErrInvalid = errors.New("invalid input")

var (
	phonePattern = regexp.MustCompile(`^\d{10,11}$`)
	cpfPattern   = regexp.MustCompile(`^\d{11}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "cpf", func(fl validator.FieldLevel) bool {
		return cpfPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
	}
}

// FieldError describes why a single field was rejected
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every rejected field of a record
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// FieldErrors extracts the rejected fields from err, if any
func FieldErrors(err error) []FieldError {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr.Fields
	}
	return nil
}

// collector accumulates type errors found while reading a record and the
// tag errors reported by the struct validator.
type collector struct {
	fields []FieldError
}

func (c *collector) add(field, message string) {
	c.fields = append(c.fields, FieldError{Field: field, Message: message})
}

func (c *collector) str(record map[string]any, key string) string {
	raw, ok := record[key]
	if !ok || raw == nil {
		c.add(key, "This field is required")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		c.add(key, "Must be a string")
		return ""
	}
	return s
}

func (c *collector) integer(record map[string]any, key string) int64 {
	raw, ok := record[key]
	if !ok || raw == nil {
		c.add(key, "This field is required")
		return 0
	}
	if _, isString := raw.(string); isString {
		c.add(key, "Must be a number")
		return 0
	}
	n, err := toInt64(raw)
	if err != nil {
		c.add(key, "Must be an integer")
		return 0
	}
	return n
}

// check runs the struct validator and returns the collected errors
func (c *collector) check(payload any) error {
	if err := validate.Struct(payload); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			return err
		}
		for _, e := range vErrs {
			if c.has(e.Field()) {
				continue
			}
			c.add(e.Field(), messageFor(e))
		}
	}

	if len(c.fields) > 0 {
		return &Error{Fields: c.fields}
	}
	return nil
}

func (c *collector) has(field string) bool {
	for _, f := range c.fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "url":
		return "Must be an absolute URL"
	case "phone":
		return "Must have 10 or 11 digits"
	case "cpf":
		return "Must have exactly 11 digits"
	case "isodate":
		return "Must be a valid YYYY-MM-DD date"
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
