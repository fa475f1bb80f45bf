// Package export writes a dataset back out as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"WorkshopMapDashboard/internal/models"
)

// ContentType is the media type of WriteCSV output.
const ContentType = "text/csv; charset=utf-8"

// WriteCSV writes the header and one row per record with standard quoting
// and no index column. The Date column is written as YYYY-MM-DD, or left
// empty when the record has no date; other cells are written as loaded.
func WriteCSV(w io.Writer, ds *models.Dataset) error {
	if ds == nil {
		ds = &models.Dataset{}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	dateIdx := ds.ColumnIndex(models.ColumnDate)
	row := make([]string, len(ds.Columns))
	for i, r := range ds.Records {
		for j := range row {
			row[j] = ""
			if j < len(r.Values) {
				row[j] = r.Values[j]
			}
		}
		if dateIdx >= 0 {
			row[dateIdx] = ""
			if r.HasDate() {
				row[dateIdx] = r.Date.Format(models.DateLayout)
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename builds the download name for an export.
func Filename(viewID string) string {
	if viewID == "" {
		return "filtered_data.csv"
	}
	return fmt.Sprintf("filtered_data_%s.csv", viewID)
}
