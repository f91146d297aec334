// Package dates handles calendar dates stored as YYYY-MM-DD strings.
//
// Parsed dates are UTC midnights so that day arithmetic never crosses a
// daylight-saving boundary.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the storage format for calendar dates.
const Layout = "2006-01-02"

// ErrInvalidDate indicates a string that is not a calendar date.
var ErrInvalidDate = errors.New("invalid date")

// Today returns the calendar day of now in now's own location.
func Today(now time.Time) string {
	return now.Format(Layout)
}

// Format renders t as a calendar date in t's location.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}

// Parse reads a calendar date. A full RFC3339 timestamp is accepted and
// reduced to its calendar day.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// IsValid reports whether s parses as a calendar date.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Normalize returns s in canonical YYYY-MM-DD form.
func Normalize(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return t.Format(Layout), nil
}

// AddDays shifts a calendar date by n days (n may be negative).
func AddDays(s string, n int) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(Layout), nil
}

// DaysBetween returns the absolute number of whole days between a and b.
func DaysBetween(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	days := int(tb.Sub(ta).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days, nil
}

// Compare orders two calendar dates: -1 if a is earlier, 0 if equal, 1 if later.
func Compare(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return ta.Compare(tb), nil
}

// FormatDisplay renders a calendar date as "Jan 2".
func FormatDisplay(s string) string {
	t, err := Parse(s)
	if err != nil {
		return ""
	}
	return t.Format("Jan 2")
}
