package models

import (
	"time"
)

// Column names every source sheet is expected to carry.
const (
	ColumnDate     = "Date"
	ColumnN        = "N"
	ColumnE        = "E"
	ColumnWorkshop = "Workshop"
	ColumnVersion  = "Version"
	ColumnCategory = "Category"
	ColumnSolution = "Solution"
)

// CategoricalFields are the columns offered as multi-select filters.
var CategoricalFields = []string{ColumnWorkshop, ColumnVersion, ColumnCategory, ColumnSolution}

// Record is one sheet row after load-time normalization.
// Date is the zero time when the source cell could not be parsed.
type Record struct {
	Date     time.Time
	N        float64
	E        float64
	Workshop string
	Version  string
	Category string
	Solution string

	// Values holds the raw cells, aligned with Dataset.Columns.
	Values []string
}

// HasDate reports whether the row carried a parseable date.
func (r Record) HasDate() bool {
	return !r.Date.IsZero()
}

// field returns one of the typed categorical values.
func (r Record) field(name string) (string, bool) {
	switch name {
	case ColumnWorkshop:
		return r.Workshop, true
	case ColumnVersion:
		return r.Version, true
	case ColumnCategory:
		return r.Category, true
	case ColumnSolution:
		return r.Solution, true
	}
	return "", false
}

// Dataset is an ordered, read-only collection of records sharing one header.
type Dataset struct {
	Columns []string
	Records []Record
}

// Len returns the number of records, treating a nil dataset as empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// ColumnIndex returns the position of name in the header or -1.
func (d *Dataset) ColumnIndex(name string) int {
	if d == nil {
		return -1
	}
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the string value of field for r. Typed categorical fields
// are served directly; any other column is looked up in the raw cells.
func (d *Dataset) Value(r Record, field string) (string, bool) {
	if v, ok := r.field(field); ok {
		return v, true
	}
	idx := d.ColumnIndex(field)
	if idx < 0 || idx >= len(r.Values) {
		return "", false
	}
	return r.Values[idx], true
}

// WithRecords returns a dataset sharing d's header over recs.
func (d *Dataset) WithRecords(recs []Record) *Dataset {
	var cols []string
	if d != nil {
		cols = d.Columns
	}
	return &Dataset{Columns: cols, Records: recs}
}
