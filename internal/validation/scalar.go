package validation

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"boardcamp/internal/domain"
)

var errNotInteger = errors.New("not an integer")

// ValidatePositiveInteger parses a loosely typed scalar as a base-10 integer
// strictly greater than zero
func ValidatePositiveInteger(raw any) (int64, error) {
	n, err := toInt64(raw)
	if err != nil || n <= 0 {
		return 0, &Error{Fields: []FieldError{{Field: "value", Message: "Must be a positive integer"}}}
	}
	return n, nil
}

// ParseStrictDate parses a "YYYY-MM-DD" calendar date with no coercion
func ParseStrictDate(s string) (time.Time, error) {
	d, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, &Error{Fields: []FieldError{{Field: "date", Message: "Must be a valid YYYY-MM-DD date"}}}
	}
	return d.Time, nil
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case string:
		return strconv.ParseInt(v, 10, 64)
	case json.Number:
		return strconv.ParseInt(v.String(), 10, 64)
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return floatToInt64(v)
	case float32:
		return floatToInt64(float64(v))
	default:
		return 0, errNotInteger
	}
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, errNotInteger
	}
	return int64(f), nil
}
