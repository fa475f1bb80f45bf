package export

import (
	"bytes"
	"strings"
	"testing"

	"WorkshopMapDashboard/internal/filter"
	"WorkshopMapDashboard/internal/loader"
	"WorkshopMapDashboard/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `Date , N,E,Workshop,Version,Category,Solution,Notes
2024-01-01,41.0,-0.9,Delicias,v1,Parking,"Bays, covered","said ""yes"""
01/02/2024,41.1,-0.8,Actur,v2,Accessibility,Ramps,
bad date,41.2,-0.7,Actur,v2,Parking,Signs,x
`

func TestWriteCSV_Format(t *testing.T) {
	ds, err := loader.Parse(strings.NewReader(source))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds))

	want := "Date,N,E,Workshop,Version,Category,Solution,Notes\n" +
		"2024-01-01,41.0,-0.9,Delicias,v1,Parking,\"Bays, covered\",\"said \"\"yes\"\"\"\n" +
		"2024-02-01,41.1,-0.8,Actur,v2,Accessibility,Ramps,\n" +
		",41.2,-0.7,Actur,v2,Parking,Signs,x\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_RoundTripOfFilteredDataset(t *testing.T) {
	ds, err := loader.Parse(strings.NewReader(source))
	require.NoError(t, err)
	filtered := filter.Apply(ds, models.FilterSpec{Fields: map[string][]string{"Category": {"Parking"}}})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, filtered))

	back, err := loader.Parse(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(filtered, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV_EmptyDatasetWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &models.Dataset{Columns: []string{"Date", "N", "E"}}))
	assert.Equal(t, "Date,N,E\n", buf.String())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "filtered_data.csv", Filename(""))
	assert.Equal(t, "filtered_data_abc.csv", Filename("abc"))
}
