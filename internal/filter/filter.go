// Package filter narrows a dataset by date interval and per-field value sets.
package filter

import (
	"sort"
	"time"

	"WorkshopMapDashboard/internal/models"
)

// Apply returns the records of ds that satisfy spec, in their original
// order. ds is never modified, so several specs can be applied to the same
// base dataset independently.
func Apply(ds *models.Dataset, spec models.FilterSpec) *models.Dataset {
	if ds == nil {
		return &models.Dataset{}
	}
	allowed := compile(spec.Fields)

	out := make([]models.Record, 0, len(ds.Records))
	for _, r := range ds.Records {
		if spec.Dates != nil && !inRange(r, *spec.Dates) {
			continue
		}
		if !matches(ds, r, allowed) {
			continue
		}
		out = append(out, r)
	}
	return ds.WithRecords(out)
}

// compile turns the wire representation into membership sets. A field
// present with no values maps to an empty, non-nil set.
func compile(fields map[string][]string) map[string]map[string]struct{} {
	if len(fields) == 0 {
		return nil
	}
	sets := make(map[string]map[string]struct{}, len(fields))
	for field, values := range fields {
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		sets[field] = set
	}
	return sets
}

func inRange(r models.Record, dr models.DateRange) bool {
	if !r.HasDate() {
		return false
	}
	if !dr.From.IsZero() && r.Date.Before(day(dr.From)) {
		return false
	}
	if !dr.To.IsZero() && r.Date.After(day(dr.To)) {
		return false
	}
	return true
}

func matches(ds *models.Dataset, r models.Record, allowed map[string]map[string]struct{}) bool {
	for field, set := range allowed {
		v, _ := ds.Value(r, field)
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}

// day truncates t to its UTC calendar day so bounds compare by date only.
func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Options lists the distinct non-empty values of field, sorted.
func Options(ds *models.Dataset, field string) []string {
	if ds == nil {
		return nil
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range ds.Records {
		v, ok := ds.Value(r, field)
		if !ok || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DateBounds returns the earliest and latest present dates. ok is false
// when no record carries a date.
func DateBounds(ds *models.Dataset) (min, max time.Time, ok bool) {
	if ds == nil {
		return
	}
	for _, r := range ds.Records {
		if !r.HasDate() {
			continue
		}
		if !ok || r.Date.Before(min) {
			min = r.Date
		}
		if !ok || r.Date.After(max) {
			max = r.Date
		}
		ok = true
	}
	return
}
