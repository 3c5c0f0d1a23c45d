package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jask/artbrowse/internal/artic"
	"github.com/jask/artbrowse/internal/config"
	"github.com/jask/artbrowse/internal/database"
	"github.com/jask/artbrowse/internal/database/repository"
	"github.com/jask/artbrowse/internal/logging"
	"github.com/jask/artbrowse/internal/service"
	"github.com/jask/artbrowse/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// env is the state shared by every command after configuration is loaded.
type env struct {
	cfg     config.Config
	logger  zerolog.Logger
	cleanup []func()
}

func (e *env) close() {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
	e.cleanup = nil
}

// run wraps a RunE so resources opened for the command are released even
// when it fails.
func (e *env) run(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer e.close()
		return fn(cmd, args)
	}
}

func (e *env) client() (*artic.Client, error) {
	return artic.New(e.cfg.ClientConfig())
}

// openStore migrates and opens the snapshot database.
func (e *env) openStore() (*service.SnapshotService, *service.MaintenanceService, error) {
	db, err := database.OpenMigrated(e.cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	e.cleanup = append(e.cleanup, func() { _ = db.Close() })
	return &service.SnapshotService{Snapshots: repository.NewSnapshotRepo(db)}, &service.MaintenanceService{DB: db}, nil
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:          "artbrowse",
		Short:        "Browse and select artworks from the Art Institute of Chicago",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			e.cfg = cfg

			logCfg := cfg.LoggingConfig()
			if cmd.Parent() == nil {
				// bubbletea owns the terminal
				f, err := logging.OpenFile(cfg.Log.File)
				if err != nil {
					return err
				}
				e.cleanup = append(e.cleanup, func() { _ = f.Close() })
				logCfg.Output = f
			} else {
				logCfg.Output = cmd.ErrOrStderr()
			}
			e.logger = logging.Setup(logCfg)

			if cfg.Metrics.Addr != "" {
				e.cleanup = append(e.cleanup, serveMetrics(cfg.Metrics.Addr, e.logger))
			}
			return nil
		},
		RunE: e.run(func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), e)
		}),
	}

	pf := root.PersistentFlags()
	pf.String("base-url", "", "artworks API root (default "+artic.DefaultBaseURL+")")
	pf.Duration("timeout", 0, "per-request timeout (default 30s)")
	pf.Int("page-size", 0, "rows per page (default 12)")
	pf.Bool("row-click", false, "start in row-click selection mode")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.String("log-file", "", "log file used by the interactive browser")
	pf.String("store", "", "snapshot database path")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	root.AddCommand(
		newPageCmd(e),
		newSelectCmd(e),
		newSnapshotsCmd(e),
		newConfigCmd(e),
	)
	return root
}

func runTUI(ctx context.Context, e *env) error {
	client, err := e.client()
	if err != nil {
		return err
	}
	snapshots, _, err := e.openStore()
	if err != nil {
		e.logger.Warn().Err(err).Msg("Snapshot store unavailable; saving is disabled")
		snapshots = nil
	}

	app := tui.New(ctx, tui.Options{
		Fetcher:   client,
		Snapshots: snapshots,
		PageSize:  e.cfg.UI.PageSize,
		PageSizes: e.cfg.UI.PageSizes,
		RowClick:  e.cfg.UI.RowClick,
		Logger:    logging.NewLogger("tui"),
	})
	e.logger.Info().Str("base_url", e.cfg.API.BaseURL).Int("page_size", e.cfg.UI.PageSize).Msg("Starting browser")

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

// serveMetrics exposes /metrics on addr and returns its shutdown func.
func serveMetrics(addr string, logger zerolog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info().Str("addr", addr).Msg("Serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("Metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func writeln(w io.Writer, s string) {
	_, _ = io.WriteString(w, s+"\n")
}
