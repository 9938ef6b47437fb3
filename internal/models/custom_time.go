package models

import (
	"encoding/json"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FlexibleDate is a calendar date that unmarshals both RFC3339 and "YYYY-MM-DD"
// and always marshals as "YYYY-MM-DD"
type FlexibleDate struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC
func NewDate(t time.Time) FlexibleDate {
	return FlexibleDate{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string
func ParseDate(s string) (FlexibleDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return FlexibleDate{}, err
	}
	return FlexibleDate{Time: t}, nil
}

// String renders the date as "YYYY-MM-DD"
func (f FlexibleDate) String() string {
	return f.Time.Format(dateLayout)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexibleDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)

	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		*f = NewDate(t)
		return nil
	}

	t, err = time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexibleDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}
