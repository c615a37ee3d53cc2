// Package datecmp evaluates date and duration comparison expressions
// against file timestamps. An expression is [op]value where value is either
// an absolute time (YYYY-MM-DD, YYYY-MM-DD HH:MM:SS, or RFC3339) or a
// relative duration (e.g. "10h", "2d", "3weeks") resolved against the
// current time. The operator defaults to equality, so ">2024-01-01" means
// "after that date" and "<2d" means "older than two days".
package datecmp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Comparator evaluates date expressions against timestamps. Now is the
// reference clock for duration expressions and defaults to time.Now.
type Comparator struct {
	Now func() time.Time
}

func New() *Comparator {
	return &Comparator{Now: time.Now}
}

// Validate reports whether s is a well-formed date expression.
func (c *Comparator) Validate(s string) error {
	_, _, err := c.parse(s)
	return err
}

// Compare reports whether the timestamp t satisfies the expression s.
func (c *Comparator) Compare(s string, t time.Time) (bool, error) {
	op, ref, err := c.parse(s)
	if err != nil {
		return false, err
	}

	switch op {
	case "<":
		return t.Before(ref), nil
	case "<=":
		return !t.After(ref), nil
	case ">":
		return t.After(ref), nil
	case ">=":
		return !t.Before(ref), nil
	default:
		return t.Equal(ref), nil
	}
}

func (c *Comparator) parse(s string) (op string, ref time.Time, err error) {
	s = strings.TrimSpace(s)
	for _, candidate := range []string{"<=", ">=", "<", ">"} {
		if strings.HasPrefix(s, candidate) {
			op = candidate
			s = strings.TrimSpace(s[len(candidate):])
			break
		}
	}

	if t, err := parseTime(s); err == nil {
		return op, t, nil
	}
	if d, err := parseDuration(s); err == nil {
		return op, c.Now().Add(-d), nil
	}
	return "", time.Time{}, fmt.Errorf("invalid date expression %q (expected a date or a duration)", s)
}

// parseTime parses various date/time formats in UTC.
// Supported formats:
//   - YYYY-MM-DD (assumes 00:00:00 UTC)
//   - YYYY-MM-DD HH:MM:SS (UTC)
//   - RFC3339: 2018-10-27T10:00:00Z (can specify any timezone)
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}

var units = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
	// Aliases
	"day":   24 * time.Hour,
	"days":  24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"weeks": 7 * 24 * time.Hour,
}

// parseDuration parses a simple duration string such as "10h", "2d",
// "3weeks", or "30days".
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration string")
	}

	// Find where the unit starts (first non-digit)
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9') {
		i++
	}

	if i == 0 {
		return 0, fmt.Errorf("invalid duration %q: missing number", s)
	}
	if i == len(s) {
		return 0, fmt.Errorf("invalid duration %q: missing unit", s)
	}

	num, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	unit, ok := units[strings.TrimSpace(s[i:])]
	if !ok {
		return 0, fmt.Errorf("invalid duration %q: unknown unit %q", s, s[i:])
	}

	// num * unit must fit in time.Duration (int64)
	if num > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("invalid duration %q: value too large", s)
	}

	return time.Duration(num) * unit, nil
}
