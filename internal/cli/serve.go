package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"creativetech.dev/internal/catalog"
	"creativetech.dev/internal/config"
	"creativetech.dev/internal/handlers"
	"creativetech.dev/internal/logger"
	"creativetech.dev/internal/metrics"
	"creativetech.dev/internal/middleware"
	"creativetech.dev/internal/render"
	"creativetech.dev/internal/services"
)

func newServeCmd(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the portfolio web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().String("server-addr", "", "HTTP listen address")
	cmd.Flags().Bool("watch", false, "reload the catalog when its file changes")
	cmd.Flags().Bool("dev", false, "reparse templates on every request")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.Dev})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, err := catalog.NewStore(cfg.CatalogPath, log, m)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	renderer, err := render.New(render.Options{Dev: cfg.Dev, Dir: cfg.TemplatesDir})
	if err != nil {
		return err
	}

	embeds := services.NewEmbedService(store, log, m)
	defer embeds.CloseAll()

	router := handlers.SetupRoutes(handlers.Deps{
		Store:        store,
		Renderer:     renderer,
		Embeds:       embeds,
		Logger:       log,
		Metrics:      m,
		StaticDir:    cfg.StaticDir,
		EmbedLimiter: middleware.NewLimiter(cfg.EmbedOpenRate, cfg.EmbedOpenBurst),
		Sessions:     middleware.NewSessionStore(cfg.SessionSecret),
	})
	if cfg.SessionSecret == "" {
		log.Warn("session_secret not set, using a per-process key")
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening",
			logger.String("addr", cfg.ServerAddr),
			logger.Int("projects", store.Catalog().Count()),
			logger.Bool("dev", cfg.Dev),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	if cfg.Watch {
		g.Go(func() error {
			return store.Watch(gctx)
		})
	}

	g.Go(func() error {
		return embeds.RunSweeper(gctx, cfg.EmbedSweepInterval, cfg.EmbedIdleTimeout)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
