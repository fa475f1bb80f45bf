package filter

import (
	"math/rand"
	"net/url"
	"testing"
	"time"

	"WorkshopMapDashboard/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(d string, n, e float64, category string) models.Record {
	r := models.Record{N: n, E: e, Category: category}
	if d != "" {
		r.Date = date(d)
	}
	return r
}

func exampleDataset() *models.Dataset {
	return &models.Dataset{
		Columns: []string{"Date", "N", "E", "Category"},
		Records: []models.Record{
			rec("2024-01-01", 41.0, -0.9, "Parking"),
			rec("2024-02-01", 41.1, -0.8, "Accessibility"),
		},
	}
}

func TestApply_Example(t *testing.T) {
	ds := exampleDataset()
	spec := models.FilterSpec{
		Dates:  &models.DateRange{From: date("2024-01-01"), To: date("2024-01-31")},
		Fields: map[string][]string{"Category": {"Parking"}},
	}

	got := Apply(ds, spec)

	if diff := cmp.Diff(ds.Records[:1], got.Records); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, ds.Columns, got.Columns)
}

func TestApply_DateBoundsAreInclusive(t *testing.T) {
	ds := &models.Dataset{Records: []models.Record{
		rec("2024-01-01", 1, 1, "a"),
		rec("2024-01-15", 1, 1, "b"),
		rec("2024-01-31", 1, 1, "c"),
		rec("2024-02-01", 1, 1, "d"),
		rec("", 1, 1, "undated"),
	}}
	spec := models.FilterSpec{Dates: &models.DateRange{From: date("2024-01-01"), To: date("2024-01-31")}}

	got := Apply(ds, spec)

	var cats []string
	for _, r := range got.Records {
		cats = append(cats, r.Category)
	}
	assert.Equal(t, []string{"a", "b", "c"}, cats)
}

func TestApply_OpenEndedRangeStillDropsUndated(t *testing.T) {
	ds := &models.Dataset{Records: []models.Record{
		rec("2023-12-31", 1, 1, "old"),
		rec("2024-06-01", 1, 1, "new"),
		rec("", 1, 1, "undated"),
	}}

	got := Apply(ds, models.FilterSpec{Dates: &models.DateRange{From: date("2024-01-01")}})
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "new", got.Records[0].Category)

	all := Apply(ds, models.FilterSpec{})
	assert.Equal(t, 3, all.Len(), "no date range keeps undated rows")
}

func TestApply_EmptyAllowedSetYieldsNothing(t *testing.T) {
	ds := exampleDataset()
	got := Apply(ds, models.FilterSpec{Fields: map[string][]string{"Category": {}}})
	assert.Equal(t, 0, got.Len())

	got = Apply(ds, models.FilterSpec{Fields: map[string][]string{"Category": nil}})
	assert.Equal(t, 0, got.Len(), "a configured field with nil values is still an empty set")
}

func TestApply_IndependentSpecsDoNotInterfere(t *testing.T) {
	ds := exampleDataset()
	before := cmp.Diff(exampleDataset(), ds)
	require.Empty(t, before)

	mapView := Apply(ds, models.FilterSpec{Fields: map[string][]string{"Category": {"Parking"}}})
	heatView := Apply(ds, models.FilterSpec{Fields: map[string][]string{"Category": {"Accessibility"}}})

	assert.Equal(t, "Parking", mapView.Records[0].Category)
	assert.Equal(t, "Accessibility", heatView.Records[0].Category)
	if diff := cmp.Diff(exampleDataset(), ds); diff != "" {
		t.Errorf("base dataset mutated (-want +got):\n%s", diff)
	}
}

func TestApply_ExtraColumnsFilterOnRawValues(t *testing.T) {
	ds := &models.Dataset{
		Columns: []string{"Date", "N", "E", "District"},
		Records: []models.Record{
			{N: 1, E: 1, Values: []string{"", "1", "1", "Centro"}},
			{N: 2, E: 2, Values: []string{"", "2", "2", "Delicias"}},
		},
	}
	got := Apply(ds, models.FilterSpec{Fields: map[string][]string{"District": {"Delicias"}}})
	require.Equal(t, 1, got.Len())
	assert.Equal(t, 2.0, got.Records[0].N)
}

// Randomized checks: the result is an order-preserving subsequence and
// applying the same spec twice changes nothing.
func TestApply_SubsequenceAndIdempotence(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	categories := []string{"Parking", "Accessibility", "Green", "Lighting", ""}
	base := date("2024-01-01")

	for round := 0; round < 50; round++ {
		ds := &models.Dataset{}
		for i := 0; i < 40; i++ {
			r := models.Record{N: float64(i), E: float64(-i), Category: categories[rnd.Intn(len(categories))]}
			if rnd.Intn(6) != 0 {
				r.Date = base.AddDate(0, 0, rnd.Intn(90))
			}
			ds.Records = append(ds.Records, r)
		}
		spec := models.FilterSpec{
			Dates: &models.DateRange{From: base.AddDate(0, 0, rnd.Intn(30)), To: base.AddDate(0, 0, 30+rnd.Intn(60))},
		}
		if rnd.Intn(2) == 0 {
			spec.Fields = map[string][]string{"Category": categories[:rnd.Intn(len(categories))]}
		}

		once := Apply(ds, spec)
		twice := Apply(once, spec)
		if diff := cmp.Diff(once.Records, twice.Records); diff != "" {
			t.Fatalf("round %d: not idempotent:\n%s", round, diff)
		}

		// N carries the original index, so a subsequence has strictly increasing N.
		last := -1.0
		for _, r := range once.Records {
			require.Greater(t, r.N, last, "round %d: order not preserved", round)
			last = r.N
		}
	}
}

func TestOptionsAndDateBounds(t *testing.T) {
	ds := &models.Dataset{Records: []models.Record{
		rec("2024-03-01", 1, 1, "Parking"),
		rec("", 1, 1, "Accessibility"),
		rec("2024-01-05", 1, 1, "Parking"),
		rec("2024-02-10", 1, 1, ""),
	}}

	assert.Equal(t, []string{"Accessibility", "Parking"}, Options(ds, "Category"))
	assert.Empty(t, Options(ds, "Nope"))

	min, max, ok := DateBounds(ds)
	require.True(t, ok)
	assert.Equal(t, date("2024-01-05"), min)
	assert.Equal(t, date("2024-03-01"), max)

	_, _, ok = DateBounds(&models.Dataset{Records: []models.Record{rec("", 1, 1, "x")}})
	assert.False(t, ok)
}

func TestFromQuery(t *testing.T) {
	q, err := url.ParseQuery("start=2024-01-01&end=2024-01-31&Category=Parking&Category=Green&Workshop=&heat.Version=v2&radius=10")
	require.NoError(t, err)

	spec, err := FromQuery(q, "")
	require.NoError(t, err)
	require.NotNil(t, spec.Dates)
	assert.Equal(t, date("2024-01-01"), spec.Dates.From)
	assert.Equal(t, date("2024-01-31"), spec.Dates.To)
	assert.Equal(t, []string{"Parking", "Green"}, spec.Fields["Category"])
	assert.Equal(t, []string{}, spec.Fields["Workshop"])
	_, hasVersion := spec.Fields["Version"]
	assert.False(t, hasVersion)

	heat, err := FromQuery(q, "heat.")
	require.NoError(t, err)
	assert.Nil(t, heat.Dates)
	assert.Equal(t, map[string][]string{"Version": {"v2"}}, heat.Fields)

	_, err = FromQuery(url.Values{"start": {"01/02/2024"}}, "")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestToQuery_RoundTrip(t *testing.T) {
	spec := models.FilterSpec{
		Dates:  &models.DateRange{From: date("2024-01-01"), To: date("2024-02-01")},
		Fields: map[string][]string{"Category": {"Parking"}, "Solution": {}},
	}
	q := url.Values{}
	ToQuery(spec, "heat.", q)

	back, err := FromQuery(q, "heat.")
	require.NoError(t, err)
	if diff := cmp.Diff(spec, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
