package validation

import (
	"fmt"
	"strings"
	"time"
)

type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Note: mirrors repository.ParseTime, both kept local to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("must be YYYY-MM-DD or RFC3339")
		}
	}
	return returnTime.UTC(), nil
}

func validateDate(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
		return
	}
	if _, err := ParseTime(value); err != nil {
		errors[field] = err.Error()
	}
}

func validatePositive(errors map[string]string, field string, value float64) {
	if value <= 0 {
		errors[field] = field + " must be positive"
	}
}

func validateNonNegative(errors map[string]string, field string, value float64) {
	if value < 0 {
		errors[field] = field + " cannot be negative"
	}
}

func result(errors map[string]string) error {
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
