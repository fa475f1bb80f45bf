package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar interval. A zero endpoint leaves that
// side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

type dateRangeJSON struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	var out dateRangeJSON
	if !r.From.IsZero() {
		out.Start = r.From.Format(DateLayout)
	}
	if !r.To.IsZero() {
		out.End = r.To.Format(DateLayout)
	}
	return json.Marshal(out)
}

func (r *DateRange) UnmarshalJSON(b []byte) error {
	var in dateRangeJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	from, err := ParseDay(in.Start)
	if err != nil {
		return err
	}
	to, err := ParseDay(in.End)
	if err != nil {
		return err
	}
	r.From, r.To = from, to
	return nil
}

// ParseDay parses a YYYY-MM-DD value. Empty input yields the zero time.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// FilterSpec is a conjunction of an optional date interval and per-field
// allowed-value sets. A field missing from Fields allows every value; a
// field present with no values allows none.
type FilterSpec struct {
	Dates  *DateRange          `json:"dates,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}
