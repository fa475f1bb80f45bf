package render

import (
	"testing"

	"WorkshopMapDashboard/internal/models"
	"WorkshopMapDashboard/internal/palette"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataset() *models.Dataset {
	return &models.Dataset{
		Columns: []string{"Date", "N", "E", "Workshop", "Version", "Category", "Solution"},
		Records: []models.Record{
			{N: 41.0, E: -0.9, Workshop: "Delicias", Version: "v1", Category: "Parking", Solution: "More bays"},
			{N: 41.1, E: -0.8, Workshop: "Actur", Version: "v2", Category: "Accessibility", Solution: "Ramps"},
			{N: 41.2, E: -0.7, Workshop: "Actur", Version: "v2", Category: "Benches", Solution: "Shade"},
			{N: 41.3, E: -0.6, Workshop: "Actur", Version: "", Category: "Parking", Solution: "Signs"},
		},
	}
}

func TestMarkers(t *testing.T) {
	panel := Markers(dataset(), palette.Default())

	require.False(t, panel.Empty)
	require.Len(t, panel.Markers, 4)
	assert.Equal(t, Marker{Lat: 41.0, Lon: -0.9, Label: "Delicias | Parking | More bays", Color: "blue"}, panel.Markers[0])
	assert.Equal(t, "green", panel.Markers[1].Color)
	assert.Equal(t, palette.DefaultFallback, panel.Markers[2].Color, "unmapped category uses fallback")
}

func TestHeatmap(t *testing.T) {
	panel := Heatmap(dataset(), 25)

	assert.False(t, panel.Empty)
	assert.Equal(t, 25, panel.Radius)
	assert.Equal(t, [2]float64{41.1, -0.8}, panel.Points[1])
	assert.Len(t, panel.Points, 4)
}

func TestCounts_OrderedByCountThenValue(t *testing.T) {
	panel := Counts(dataset(), "Category")
	assert.Equal(t, []Count{
		{Value: "Parking", Count: 2},
		{Value: "Accessibility", Count: 1},
		{Value: "Benches", Count: 1},
	}, panel.Counts)

	versions := Counts(dataset(), "Version")
	assert.Equal(t, []Count{{Value: "v2", Count: 2}, {Value: "v1", Count: 1}}, versions.Counts, "blank values are skipped")
}

func TestPanels_EmptyResultDegradesToMessage(t *testing.T) {
	empty := &models.Dataset{Columns: dataset().Columns}

	m := Markers(empty, palette.Default())
	assert.True(t, m.Empty)
	assert.Equal(t, NoDataMessage, m.Message)
	assert.NotNil(t, m.Markers)

	h := Heatmap(nil, 10)
	assert.True(t, h.Empty)
	assert.Equal(t, NoDataMessage, h.Message)

	c := Counts(empty, "Category")
	assert.True(t, c.Empty)
	assert.Equal(t, "Category", c.Field)

	unknown := Counts(dataset(), "NoSuchColumn")
	assert.True(t, unknown.Empty)
}
