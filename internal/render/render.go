// Package render turns a filtered dataset into the payload each dashboard
// panel draws: map markers, a heatmap layer and per-field bar counts.
package render

import (
	"sort"
	"strings"

	"WorkshopMapDashboard/internal/models"
)

// NoDataMessage replaces a visualization when filters exclude every record.
const NoDataMessage = "No data for the selected filters."

// ColorLookup resolves a category to a marker color.
type ColorLookup interface {
	Color(category string) string
}

// Marker is one map pin.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// MarkerPanel feeds the marker map.
type MarkerPanel struct {
	Empty   bool     `json:"empty"`
	Message string   `json:"message,omitempty"`
	Markers []Marker `json:"markers"`
}

// HeatmapPanel feeds the heatmap layer. Points are [N, E] pairs.
type HeatmapPanel struct {
	Empty   bool         `json:"empty"`
	Message string       `json:"message,omitempty"`
	Radius  int          `json:"radius"`
	Points  [][2]float64 `json:"points"`
}

// Count is one bar.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CountsPanel feeds one bar chart.
type CountsPanel struct {
	Field   string  `json:"field"`
	Empty   bool    `json:"empty"`
	Message string  `json:"message,omitempty"`
	Counts  []Count `json:"counts"`
}

// Label joins the Workshop, Category and Solution of r.
func Label(r models.Record) string {
	return strings.Join([]string{r.Workshop, r.Category, r.Solution}, " | ")
}

// Markers builds one marker per record, colored by category.
func Markers(ds *models.Dataset, colors ColorLookup) MarkerPanel {
	if ds.Len() == 0 {
		return MarkerPanel{Empty: true, Message: NoDataMessage, Markers: []Marker{}}
	}
	out := make([]Marker, 0, ds.Len())
	for _, r := range ds.Records {
		out = append(out, Marker{
			Lat:   r.N,
			Lon:   r.E,
			Label: Label(r),
			Color: colors.Color(r.Category),
		})
	}
	return MarkerPanel{Markers: out}
}

// Heatmap lists record coordinates with a fixed decay radius.
func Heatmap(ds *models.Dataset, radius int) HeatmapPanel {
	if ds.Len() == 0 {
		return HeatmapPanel{Empty: true, Message: NoDataMessage, Radius: radius, Points: [][2]float64{}}
	}
	points := make([][2]float64, 0, ds.Len())
	for _, r := range ds.Records {
		points = append(points, [2]float64{r.N, r.E})
	}
	return HeatmapPanel{Radius: radius, Points: points}
}

// Counts groups records by the value of field. Bars are ordered by count,
// highest first, then by value; empty values are skipped.
func Counts(ds *models.Dataset, field string) CountsPanel {
	panel := CountsPanel{Field: field, Counts: []Count{}}
	if ds.Len() > 0 {
		tally := make(map[string]int)
		for _, r := range ds.Records {
			v, ok := ds.Value(r, field)
			if !ok || v == "" {
				continue
			}
			tally[v]++
		}
		for v, n := range tally {
			panel.Counts = append(panel.Counts, Count{Value: v, Count: n})
		}
		sort.Slice(panel.Counts, func(i, j int) bool {
			a, b := panel.Counts[i], panel.Counts[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return a.Value < b.Value
		})
	}
	if len(panel.Counts) == 0 {
		panel.Empty = true
		panel.Message = NoDataMessage
	}
	return panel
}
