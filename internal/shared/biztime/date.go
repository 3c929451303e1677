package biztime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date without time of day. It travels as "YYYY-MM-DD"
// and is stored in DATE columns.
type Date struct {
	time.Time
}

// NewDate returns the calendar date of t.
func NewDate(t time.Time) Date {
	return Date{Time: StartOfDayUTC(t)}
}

// MustDate parses s and panics on error. Used by fixtures.
func MustDate(s string) Date {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return Date{Time: t}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return FormatDate(d.Time)
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a YYYY-MM-DD string")
	}
	return d.parse(raw)
}

func (d *Date) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(DateLayout) {
		// Accept full timestamps as produced by some drivers.
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			*d = NewDate(t)
			return nil
		}
		if t, err := time.Parse("2006-01-02 15:04:05-07:00", raw); err == nil {
			*d = NewDate(t)
			return nil
		}
		raw = raw[:len(DateLayout)]
	}
	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = Date{Time: t}
	return nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

// Value implements driver.Valuer. The zero date is stored as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// GormDataType declares the column type used by AutoMigrate.
func (Date) GormDataType() string {
	return "date"
}
