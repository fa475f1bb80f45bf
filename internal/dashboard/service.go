// Package dashboard runs the load → filter → render pipeline behind every
// dashboard request.
package dashboard

import (
	"context"
	"io"

	"WorkshopMapDashboard/internal/export"
	"WorkshopMapDashboard/internal/filter"
	"WorkshopMapDashboard/internal/loader"
	"WorkshopMapDashboard/internal/models"
	"WorkshopMapDashboard/internal/palette"
	"WorkshopMapDashboard/internal/render"

	"go.uber.org/zap"
)

// DefaultCountFields are charted when a request names none.
var DefaultCountFields = []string{models.ColumnCategory, models.ColumnSolution}

// Source provides the base dataset for a sheet URL.
type Source interface {
	Load(ctx context.Context, url string) (*models.Dataset, error)
}

// Request describes one render of the dashboard. Map and Heatmap are
// applied independently to the same base dataset; counts follow the map
// filter.
type Request struct {
	Map         models.FilterSpec `json:"map"`
	Heatmap     models.FilterSpec `json:"heatmap"`
	CountFields []string          `json:"count_fields,omitempty"`
	Radius      int               `json:"radius,omitempty"`
}

// Response carries every panel. Error is set when the sheet could not be
// loaded; the panels are then rendered from an empty dataset.
type Response struct {
	Error       string               `json:"error,omitempty"`
	TotalRows   int                  `json:"total_rows"`
	MapRows     int                  `json:"map_rows"`
	HeatmapRows int                  `json:"heatmap_rows"`
	Markers     render.MarkerPanel   `json:"markers"`
	Heatmap     render.HeatmapPanel  `json:"heatmap"`
	Counts      []render.CountsPanel `json:"counts"`
}

// Meta describes the loaded sheet so clients can build their filter widgets.
type Meta struct {
	Error   string              `json:"error,omitempty"`
	Columns []string            `json:"columns"`
	Rows    int                 `json:"rows"`
	DateMin string              `json:"date_min,omitempty"`
	DateMax string              `json:"date_max,omitempty"`
	Options map[string][]string `json:"options"`
	Palette *palette.Palette    `json:"palette"`
}

// Service renders dashboards for one sheet URL.
type Service struct {
	source  Source
	url     string
	palette *palette.Store
	radius  int
	logger  *zap.Logger
}

// NewService wires a pipeline for url.
func NewService(source Source, url string, colors *palette.Store, radius int, logger *zap.Logger) *Service {
	if colors == nil {
		colors = palette.NewStore(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, url: url, palette: colors, radius: radius, logger: logger}
}

// URL returns the sheet this service renders.
func (s *Service) URL() string { return s.url }

// Radius returns the default heatmap radius.
func (s *Service) Radius() int { return s.radius }

// dataset loads the base dataset. On failure it returns an empty dataset
// and the user-facing message.
func (s *Service) dataset(ctx context.Context) (*models.Dataset, string) {
	ds, err := s.source.Load(ctx, s.url)
	if err != nil {
		s.logger.Warn("rendering without data", zap.Error(err))
		return &models.Dataset{}, loader.UserMessage(err)
	}
	return ds, ""
}

// Build renders every panel for req.
func (s *Service) Build(ctx context.Context, req Request) Response {
	base, msg := s.dataset(ctx)

	mapView := filter.Apply(base, req.Map)
	heatView := filter.Apply(base, req.Heatmap)

	radius := req.Radius
	if radius <= 0 {
		radius = s.radius
	}
	fields := req.CountFields
	if len(fields) == 0 {
		fields = DefaultCountFields
	}
	counts := make([]render.CountsPanel, 0, len(fields))
	for _, f := range fields {
		counts = append(counts, render.Counts(mapView, f))
	}

	return Response{
		Error:       msg,
		TotalRows:   base.Len(),
		MapRows:     mapView.Len(),
		HeatmapRows: heatView.Len(),
		Markers:     render.Markers(mapView, s.palette),
		Heatmap:     render.Heatmap(heatView, radius),
		Counts:      counts,
	}
}

// Markers renders only the marker panel.
func (s *Service) Markers(ctx context.Context, spec models.FilterSpec) (render.MarkerPanel, string) {
	base, msg := s.dataset(ctx)
	return render.Markers(filter.Apply(base, spec), s.palette), msg
}

// Heatmap renders only the heatmap panel. A non-positive radius uses the
// configured default.
func (s *Service) Heatmap(ctx context.Context, spec models.FilterSpec, radius int) (render.HeatmapPanel, string) {
	if radius <= 0 {
		radius = s.radius
	}
	base, msg := s.dataset(ctx)
	return render.Heatmap(filter.Apply(base, spec), radius), msg
}

// Counts renders one bar chart for field.
func (s *Service) Counts(ctx context.Context, spec models.FilterSpec, field string) (render.CountsPanel, string) {
	base, msg := s.dataset(ctx)
	return render.Counts(filter.Apply(base, spec), field), msg
}

// Meta lists columns, date bounds and filter choices of the sheet.
func (s *Service) Meta(ctx context.Context) Meta {
	base, msg := s.dataset(ctx)
	meta := Meta{
		Error:   msg,
		Columns: base.Columns,
		Rows:    base.Len(),
		Options: make(map[string][]string, len(models.CategoricalFields)),
		Palette: s.palette.Current(),
	}
	if meta.Columns == nil {
		meta.Columns = []string{}
	}
	if min, max, ok := filter.DateBounds(base); ok {
		meta.DateMin = min.Format(models.DateLayout)
		meta.DateMax = max.Format(models.DateLayout)
	}
	for _, f := range models.CategoricalFields {
		meta.Options[f] = filter.Options(base, f)
	}
	return meta
}

// Export writes the records matching spec as CSV and returns how many rows
// were written. Load failures are returned rather than exporting nothing.
func (s *Service) Export(ctx context.Context, w io.Writer, spec models.FilterSpec) (int, error) {
	base, err := s.source.Load(ctx, s.url)
	if err != nil {
		return 0, err
	}
	view := filter.Apply(base, spec)
	if err := export.WriteCSV(w, view); err != nil {
		return 0, err
	}
	return view.Len(), nil
}

// Cached reports whether the source already holds the dataset in memory.
func (s *Service) Cached() bool {
	c, ok := s.source.(interface{ Cached(url string) bool })
	return ok && c.Cached(s.url)
}

// Forget drops the memoized dataset when the source supports it.
func (s *Service) Forget() bool {
	f, ok := s.source.(interface{ Forget(url string) })
	if !ok {
		return false
	}
	f.Forget(s.url)
	return true
}
