package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"WorkshopMapDashboard/internal/config"
	"WorkshopMapDashboard/internal/dashboard"
	"WorkshopMapDashboard/internal/loader"
	"WorkshopMapDashboard/internal/logging"
	"WorkshopMapDashboard/internal/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportFlags struct {
	url    string
	start  string
	end    string
	fields []string
	out    string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered sheet as CSV",
	Long: `Loads the workshop sheet, applies the given filters and writes the
matching rows as CSV.

  api export --start 2024-03-01 --end 2024-03-31 --field Category=Parking --out march.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.url, "url", "", "CSV source (default SHEET_URL)")
	f.StringVar(&exportFlags.start, "start", "", "first date, YYYY-MM-DD")
	f.StringVar(&exportFlags.end, "end", "", "last date, YYYY-MM-DD")
	f.StringArrayVar(&exportFlags.fields, "field", nil, "allowed value as Column=Value, repeatable")
	f.StringVarP(&exportFlags.out, "out", "o", "-", "output file, - for stdout")
}

// specFromFlags builds a filter from --start, --end and --field. A --field
// given as "Column=" configures an empty set for that column.
func specFromFlags(start, end string, fields []string) (models.FilterSpec, error) {
	var spec models.FilterSpec
	from, err := models.ParseDay(start)
	if err != nil {
		return spec, err
	}
	to, err := models.ParseDay(end)
	if err != nil {
		return spec, err
	}
	if !from.IsZero() || !to.IsZero() {
		spec.Dates = &models.DateRange{From: from, To: to}
	}
	for _, kv := range fields {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return spec, fmt.Errorf("invalid --field %q: want Column=Value", kv)
		}
		if spec.Fields == nil {
			spec.Fields = make(map[string][]string)
		}
		if value == "" {
			if _, seen := spec.Fields[name]; !seen {
				spec.Fields[name] = []string{}
			}
			continue
		}
		spec.Fields[name] = append(spec.Fields[name], value)
	}
	return spec, nil
}

type exporter interface {
	Export(ctx context.Context, w io.Writer, spec models.FilterSpec) (int, error)
}

// exportToFile writes the export to path. The file is removed when the
// export or the close fails.
func exportToFile(ctx context.Context, svc exporter, path string, spec models.FilterSpec) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	rows, err := svc.Export(ctx, file, spec)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", path, cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	return rows, nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	spec, err := specFromFlags(exportFlags.start, exportFlags.end, exportFlags.fields)
	if err != nil {
		return err
	}
	source := exportFlags.url
	if source == "" {
		source = cfg.SheetURL
	}

	ld := loader.New(&http.Client{Timeout: cfg.FetchTimeout}, logger.Named("loader"))
	svc := dashboard.NewService(ld, source, nil, cfg.HeatmapRadius, logger.Named("dashboard"))

	start := time.Now()
	var rows int
	if exportFlags.out == "-" {
		rows, err = svc.Export(cmd.Context(), cmd.OutOrStdout(), spec)
	} else {
		rows, err = exportToFile(cmd.Context(), svc, exportFlags.out, spec)
	}
	if err != nil {
		var fe *loader.FetchError
		var pe *loader.ParseError
		if errors.As(err, &fe) || errors.As(err, &pe) {
			return errors.New(loader.UserMessage(err))
		}
		return err
	}
	logger.Info("export written",
		zap.String("out", exportFlags.out),
		zap.Int("rows", rows),
		zap.Duration("took", time.Since(start)))
	return nil
}
