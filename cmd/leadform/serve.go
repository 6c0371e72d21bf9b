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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-leadform/internal/metrics"
	"github.com/goliatone/go-leadform/internal/server"
	"github.com/goliatone/go-leadform/pkg/session"
)

func serveCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page and forms over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	forms, err := a.forms(ctx)
	if err != nil {
		return err
	}
	sub, err := a.submitter()
	if err != nil {
		return err
	}
	st, err := a.site()
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if a.cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(registry)
	}

	var sessionOpts []session.Option
	if m != nil {
		sessionOpts = append(sessionOpts, session.WithObserver(m))
	}
	store := session.NewStore(forms.Inquiry, []session.StoreOption{
		session.WithTTL(a.cfg.Session.TTL),
		session.WithCullInterval(a.cfg.Session.CullInterval),
	}, a.sessionOptions(sub, sessionOpts...)...)

	serverOpts := []server.Option{
		server.WithLogger(a.logger),
		server.WithCountries(a.countries()),
		server.WithConsentStore(a.consentStore()),
		server.WithNewsletterSubmitter(sub),
		server.WithSite(st),
		server.WithNewsletterTimeout(a.cfg.Submit.Timeout),
	}
	if m != nil {
		serverOpts = append(serverOpts, server.WithMetrics(m, a.cfg.Metrics.Path))
	}
	srv, err := server.New(store, forms.Newsletter, serverOpts...)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: a.cfg.Server.ReadTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("version", version))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout(a.cfg.Server.ShutdownTimeout))
		defer cancel()
		a.logger.Info("shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func shutdownTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}
