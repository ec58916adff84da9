package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a local calendar day in ISO form. The zero value means "no date"
// and encodes as JSON null.
type Date string

func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse(DateLayout, raw); err != nil {
		return "", &ValidationError{Field: "date", Message: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", raw)}
	}
	return Date(raw), nil
}

func (d Date) IsZero() bool { return d == "" }

func (d Date) String() string { return string(d) }

// Time returns midnight of the day in loc.
func (d Date) Time(loc *time.Location) (time.Time, bool) {
	if d.IsZero() {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays shifts by whole calendar days, so DST changes never skip a day.
func (d Date) AddDays(n int) Date {
	t, ok := d.Time(time.UTC)
	if !ok {
		return d
	}
	return DateOf(t.AddDate(0, 0, n))
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = ""
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// Older documents may carry a full timestamp; keep the day part.
	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}
	*d = Date(raw)
	return nil
}
