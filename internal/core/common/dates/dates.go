// Package dates provides a calendar-date JSON type for request payloads.
package dates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/hospital-careers/internal/thaidate"
)

const Layout = "2006-01-02"

// Date is a day without a time of day. It accepts "2006-01-02", RFC 3339
// timestamps and Thai "dd/mm/yyyy" Buddhist-era dates, and encodes as
// "2006-01-02". The zero value encodes as null.
type Date struct {
	time.Time
}

func New(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(Layout, s); err == nil {
		return Date{t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.In(thaidate.Location).Date()
		return New(y, m, d), nil
	}
	if t, err := thaidate.ParseBE(s); err == nil {
		return Date{t}, nil
	}
	return Date{}, fmt.Errorf("dates: %q is not a date, use YYYY-MM-DD or DD/MM/YYYY", s)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("dates: expected a string: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(Layout))
}

// Ptr returns nil for the zero date.
func Ptr(d *Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// From wraps a stored time, nil stays nil.
func From(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	y, m, day := t.Date()
	d := New(y, m, day)
	return &d
}
