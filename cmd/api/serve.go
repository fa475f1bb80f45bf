package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "WorkshopMapDashboard/docs"
	"WorkshopMapDashboard/internal/auth"
	"WorkshopMapDashboard/internal/config"
	"WorkshopMapDashboard/internal/dashboard"
	"WorkshopMapDashboard/internal/handler"
	"WorkshopMapDashboard/internal/loader"
	"WorkshopMapDashboard/internal/logging"
	"WorkshopMapDashboard/internal/palette"
	"WorkshopMapDashboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	colors := palette.NewStore(nil)
	if cfg.PaletteFile != "" {
		p, err := palette.ReadFile(cfg.PaletteFile)
		if err != nil {
			return err
		}
		colors.Replace(p)
	}

	ld := loader.New(&http.Client{Timeout: cfg.FetchTimeout}, logger.Named("loader"))
	svc := dashboard.NewService(ld, cfg.SheetURL, colors, cfg.HeatmapRadius, logger.Named("dashboard"))
	tokens := auth.NewTokens(cfg.JWTSecret, logger.Named("auth"))
	h := handler.New(svc, store, tokens, cfg.PublicBaseURL, logger)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.NewRouter(h, handler.RouterOptions{
			InviteCode:       cfg.InviteCode,
			ExportRatePerMin: cfg.ExportRatePerMin,
			Swagger:          true,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler, err := scheduleRetention(ctx, store, cfg.ExportRetention, logger.Named("retention"))
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("sheet", cfg.SheetURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		// warm the dataset cache so the first visitor does not wait on the fetch
		meta := svc.Meta(gctx)
		if meta.Error != "" {
			logger.Warn("initial sheet load failed", zap.String("error", meta.Error))
		}
		return nil
	})
	if cfg.PaletteFile != "" {
		g.Go(func() error {
			if err := palette.Watch(gctx, cfg.PaletteFile, colors, logger.Named("palette")); err != nil {
				logger.Warn("palette hot reload disabled", zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}

// scheduleRetention prunes export log entries older than retention once a
// day.
func scheduleRetention(ctx context.Context, store *storage.Store, retention time.Duration, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		cutoff := time.Now().Add(-retention)
		n, err := store.PruneExports(ctx, cutoff)
		if err != nil {
			logger.Error("export log prune failed", zap.Error(err))
			return
		}
		logger.Info("export log pruned", zap.Int64("removed", n), zap.Time("before", cutoff))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule export log retention: %w", err)
	}
	return c, nil
}
