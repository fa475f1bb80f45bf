package loader

import (
	"errors"
	"strings"
	"testing"
	"time"

	"WorkshopMapDashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = ` Date ,N,E, Workshop,Version,Category,Solution,Notes
2024-01-01,41.0,-0.9,Delicias,v1,Parking,More bays,"quiet, shaded"
2024-02-01,41.1,-0.8,Actur,v2,Accessibility,Ramps,
not a date,41.2,-0.7,Actur,v2,Parking,Signs,late entry
`

func TestParse_NormalizesHeaderAndValues(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "N", "E", "Workshop", "Version", "Category", "Solution", "Notes"}, ds.Columns)
	require.Equal(t, 3, ds.Len())

	first := ds.Records[0]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 41.0, first.N)
	assert.Equal(t, -0.9, first.E)
	assert.Equal(t, "Delicias", first.Workshop)
	assert.Equal(t, "Parking", first.Category)
	assert.Equal(t, "quiet, shaded", first.Values[7])

	assert.False(t, ds.Records[2].HasDate(), "unparseable date becomes absent")
	assert.Equal(t, "Signs", ds.Records[2].Solution)
}

func TestParse_DropsExactlyRowsMissingCoordinates(t *testing.T) {
	in := "Date,N,E,Category\n" +
		"2024-01-01,41.0,-0.9,A\n" +
		"2024-01-02,,-0.9,B\n" +
		"2024-01-03,41.0,,C\n" +
		"2024-01-04,41.0,-0.9,D\n"

	ds, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	var cats []string
	for _, r := range ds.Records {
		cats = append(cats, r.Category)
	}
	assert.Equal(t, []string{"A", "D"}, cats)
}

func TestParse_DateLayouts(t *testing.T) {
	want := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2024-03-07", "2024/03/07", "07/03/2024", "7/3/2024", "2024-03-07 18:30:00", "2024-03-07T18:30:00Z"} {
		assert.Equal(t, want, parseDate(s), s)
	}
	assert.True(t, parseDate("March 7th").IsZero())
}

func TestParse_CommaDecimalCoordinates(t *testing.T) {
	ds, err := Parse(strings.NewReader("Date,N,E\n2024-01-01,\"41,65\",\"-0,88\"\n"))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.InDelta(t, 41.65, ds.Records[0].N, 1e-9)
	assert.InDelta(t, -0.88, ds.Records[0].E, 1e-9)
}

func TestParse_ShortRowsArePadded(t *testing.T) {
	ds, err := Parse(strings.NewReader("Date,N,E,Category\n2024-01-01,41,-0.9\n"))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "", ds.Records[0].Category)
	assert.Len(t, ds.Records[0].Values, 4)
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty document", in: ""},
		{name: "missing coordinate column", in: "Date,N,Category\n2024-01-01,41,A\n"},
		{name: "bare quote", in: "Date,N,E\n2024-01-01,4\"1,-0.9\n"},
		{name: "too many fields", in: "Date,N,E\n2024-01-01,41,-0.9,extra\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
		})
	}

	_, err := Parse(strings.NewReader("Date,E\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestParse_ByteOrderMark(t *testing.T) {
	ds, err := Parse(strings.NewReader("\ufeffDate,N,E\n2024-01-01,41,-0.9\n"))
	require.NoError(t, err)
	assert.Equal(t, models.ColumnDate, ds.Columns[0])
	assert.True(t, ds.Records[0].HasDate())
}
