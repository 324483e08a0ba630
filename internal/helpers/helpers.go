package helpers

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

// GenerateBookingID returns a human-readable identifier built from the
// current millisecond timestamp and a bounded random suffix. The suffix
// space widens tenfold per retry attempt, so repeated collisions get an
// exponentially larger identifier space to land in. Best effort only;
// uniqueness is enforced by the store index plus the service retry loop.
func GenerateBookingID(attempt int) string {
	bound := 1000
	for i := 0; i < attempt; i++ {
		bound *= 10
	}
	return fmt.Sprintf("CR%d%d", time.Now().UnixMilli(), rand.Intn(bound))
}

// ToInt coerces a decoded JSON value into an int, falling back when the
// value is absent or unparseable. JSON numbers arrive as float64.
func ToInt(v interface{}, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return fallback
}

func ToFloat(v interface{}, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// ParseDate accepts the date formats clients actually send. Anything else
// is an error; malformed dates are rejected rather than stored as invalid
// timestamps.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}
