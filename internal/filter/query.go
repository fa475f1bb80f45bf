package filter

import (
	"errors"
	"fmt"
	"net/url"
	"sort"

	"WorkshopMapDashboard/internal/models"
)

// ErrInvalidDate is returned when a date bound is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// FromQuery reads a spec from query parameters. Parameter names are
// prefix+"start", prefix+"end" and prefix+<field> for each categorical
// field, repeated once per allowed value. A field given only empty values
// is configured with an empty set.
func FromQuery(q url.Values, prefix string) (models.FilterSpec, error) {
	var spec models.FilterSpec

	start, err := models.ParseDay(q.Get(prefix + "start"))
	if err != nil {
		return spec, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	end, err := models.ParseDay(q.Get(prefix + "end"))
	if err != nil {
		return spec, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if !start.IsZero() || !end.IsZero() {
		spec.Dates = &models.DateRange{From: start, To: end}
	}

	for _, field := range models.CategoricalFields {
		raw, ok := q[prefix+field]
		if !ok {
			continue
		}
		values := make([]string, 0, len(raw))
		for _, v := range raw {
			if v != "" {
				values = append(values, v)
			}
		}
		if spec.Fields == nil {
			spec.Fields = make(map[string][]string)
		}
		spec.Fields[field] = values
	}
	return spec, nil
}

// ToQuery is the inverse of FromQuery.
func ToQuery(spec models.FilterSpec, prefix string, q url.Values) {
	if spec.Dates != nil {
		if !spec.Dates.From.IsZero() {
			q.Set(prefix+"start", spec.Dates.From.Format(models.DateLayout))
		}
		if !spec.Dates.To.IsZero() {
			q.Set(prefix+"end", spec.Dates.To.Format(models.DateLayout))
		}
	}
	fields := make([]string, 0, len(spec.Fields))
	for f := range spec.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		values := spec.Fields[f]
		if len(values) == 0 {
			q.Set(prefix+f, "")
			continue
		}
		for _, v := range values {
			q.Add(prefix+f, v)
		}
	}
}
