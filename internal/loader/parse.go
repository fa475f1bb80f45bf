package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"WorkshopMapDashboard/internal/models"
)

// dateLayouts are tried in order; the first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	time.RFC3339,
}

// Parse reads CSV content into a dataset. Header names are trimmed, dates
// that do not parse become absent and rows without both coordinates are
// dropped. The raw Date cell is rewritten in YYYY-MM-DD form, or emptied
// when absent, so Values always reflect the parsed schema.
func Parse(r io.Reader) (*models.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: errors.New("empty document")}
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[i] = strings.TrimSpace(h)
	}
	ds := &models.Dataset{Columns: cols}

	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := idx[c]; !dup {
			idx[c] = i
		}
	}
	for _, req := range []string{models.ColumnDate, models.ColumnN, models.ColumnE} {
		if _, ok := idx[req]; !ok {
			return nil, &ParseError{Line: 1, Err: fmt.Errorf("%w %q", ErrMissingColumn, req)}
		}
	}

	dateIdx := idx[models.ColumnDate]

	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		if len(row) > len(cols) {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{Line: line, Err: fmt.Errorf("%d fields, header has %d", len(row), len(cols))}
		}

		n, okN := parseCoord(cell(row, models.ColumnN))
		e, okE := parseCoord(cell(row, models.ColumnE))
		if !okN || !okE {
			continue
		}

		values := make([]string, len(cols))
		copy(values, row)
		date := parseDate(cell(row, models.ColumnDate))
		values[dateIdx] = ""
		if !date.IsZero() {
			values[dateIdx] = date.Format(models.DateLayout)
		}

		ds.Records = append(ds.Records, models.Record{
			Date:     date,
			N:        n,
			E:        e,
			Workshop: cell(row, models.ColumnWorkshop),
			Version:  cell(row, models.ColumnVersion),
			Category: cell(row, models.ColumnCategory),
			Solution: cell(row, models.ColumnSolution),
			Values:   values,
		})
	}
	return ds, nil
}

func wrapCSVError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}

// parseDate returns the calendar day of s in UTC, or the zero time.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// parseCoord accepts a dot or a single comma as decimal separator.
func parseCoord(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
