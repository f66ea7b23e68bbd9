package dateutil

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-hrdash/internal/shared/apperror"
)

const DateLayout = "2006-01-02"

// Parse accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date and returns it
// in UTC.
func Parse(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", v, err)
	}
	return t.UTC(), nil
}

// ParseField is Parse with a client-facing INVALID_INPUT error naming field.
func ParseField(field, v string) (time.Time, error) {
	t, err := Parse(v)
	if err != nil {
		return time.Time{}, apperror.New(
			apperror.CodeInvalidInput,
			field+" must be an ISO-8601 date (YYYY-MM-DD or RFC 3339)",
			http.StatusBadRequest,
		).WithDetails(map[string]string{"field": field})
	}
	return t, nil
}

// Format renders t as RFC 3339 in UTC. Fractional seconds are kept only when
// present, so updated_at ticks stay visible.
func Format(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Tick returns now, nudged past prev when the clock has not moved on, so
// successive updated_at stamps are strictly increasing.
func Tick(now, prev time.Time) time.Time {
	now = now.UTC()
	if !now.After(prev) {
		return prev.UTC().Add(time.Microsecond)
	}
	return now
}
