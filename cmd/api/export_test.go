package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"WorkshopMapDashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecFromFlags(t *testing.T) {
	spec, err := specFromFlags("2024-03-01", "", []string{"Category=Parking", "Category=Safety", "Version="})
	require.NoError(t, err)

	require.NotNil(t, spec.Dates)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), spec.Dates.From)
	assert.True(t, spec.Dates.To.IsZero())
	assert.Equal(t, []string{"Parking", "Safety"}, spec.Fields[models.ColumnCategory])
	assert.Equal(t, []string{}, spec.Fields[models.ColumnVersion])
}

func TestSpecFromFlags_NoFilters(t *testing.T) {
	spec, err := specFromFlags("", "", nil)
	require.NoError(t, err)
	assert.Nil(t, spec.Dates)
	assert.Nil(t, spec.Fields)
}

func TestSpecFromFlags_Invalid(t *testing.T) {
	_, err := specFromFlags("03/01/2024", "", nil)
	assert.Error(t, err)

	_, err = specFromFlags("", "", []string{"Parking"})
	assert.Error(t, err)
}

type stubExporter struct {
	partial string
	err     error
}

func (s stubExporter) Export(ctx context.Context, w io.Writer, spec models.FilterSpec) (int, error) {
	if _, err := io.WriteString(w, s.partial); err != nil {
		return 0, err
	}
	if s.err != nil {
		return 0, s.err
	}
	return 1, nil
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows, err := exportToFile(context.Background(), stubExporter{partial: "Date,N,E\n2024-01-01,1,2\n"}, path, models.FilterSpec{})
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,N,E\n2024-01-01,1,2\n", string(data))
}

func TestExportToFile_FailureRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	boom := errors.New("sheet went away")
	_, err := exportToFile(context.Background(), stubExporter{partial: "Date,N,E\n", err: boom}, path, models.FilterSpec{})
	assert.ErrorIs(t, err, boom)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial export left behind")
}

func TestExportToFile_CreateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	_, err := exportToFile(context.Background(), stubExporter{}, path, models.FilterSpec{})
	assert.Error(t, err)
}
