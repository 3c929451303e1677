// Package biztime centralizes time handling. All storage and transport use UTC;
// calendar dates travel as YYYY-MM-DD strings.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DateLayout is the wire and spreadsheet layout of calendar dates.
const DateLayout = "2006-01-02"

var (
	clockMu sync.RWMutex
	clock   = time.Now
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	clockMu.RLock()
	now := clock
	clockMu.RUnlock()
	return now().UTC()
}

// SetClock replaces the time source and returns a function restoring the previous one.
// Intended for tests exercising expiry.
func SetClock(now func() time.Time) (restore func()) {
	clockMu.Lock()
	prev := clock
	clock = now
	clockMu.Unlock()
	return func() {
		clockMu.Lock()
		clock = prev
		clockMu.Unlock()
	}
}

// ParseDate parses a YYYY-MM-DD string as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDayUTC returns midnight UTC of the calendar day of t.
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
