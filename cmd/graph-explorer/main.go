package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/diwise/graph-explorer/internal/pkg/application/explorer"
	"github.com/diwise/graph-explorer/internal/pkg/application/notifications"
	"github.com/diwise/graph-explorer/internal/pkg/infrastructure/router"
	"github.com/diwise/graph-explorer/internal/pkg/infrastructure/sessions"
	graphexplorer "github.com/diwise/graph-explorer/internal/pkg/presentation/api/graph-explorer"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName string = "graph-explorer"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion, "json")
	defer cleanup()

	configPath := env.GetVariableOrDefault(ctx, "GRAPH_EXPLORER_CONFIG_PATH", "/opt/diwise/config/connections.yaml")
	policyPath := env.GetVariableOrDefault(ctx, "OPA_POLICY_PATH", "/opt/diwise/config/authz.rego")
	port := env.GetVariableOrDefault(ctx, "SERVICE_PORT", "8080")

	cfg, err := loadConfiguration(configPath)
	if err != nil {
		fatal(log, "failed to load connections configuration", err)
	}

	applyDefaultBatchSize(ctx, log, cfg)

	options := []explorer.Option{
		explorer.WithMetrics(prometheus.DefaultRegisterer),
	}

	if endpoint := env.GetVariableOrDefault(ctx, "NOTIFIER_ENDPOINT", ""); endpoint != "" {
		notifier, err := notifications.NewNotifier(ctx, endpoint)
		if err != nil {
			fatal(log, "failed to create notifier", err)
		}
		options = append(options, explorer.WithNotifier(notifier))
	}

	pool, err := connectSessions(ctx)
	if err != nil {
		fatal(log, "failed to connect to session storage", err)
	}

	if pool != nil {
		defer pool.Close()

		repo, err := sessions.NewRepository(ctx, pool)
		if err != nil {
			fatal(log, "failed to create session repository", err)
		}
		options = append(options, explorer.WithSessions(repo))
	} else {
		log.Info("no session storage configured, saved sessions are disabled")
	}

	app, err := explorer.New(ctx, *cfg, options...)
	if err != nil {
		fatal(log, "failed to create explorer", err)
	}

	if err = app.Start(); err != nil {
		fatal(log, "failed to start explorer", err)
	}
	defer app.Stop()

	policies, err := os.Open(policyPath)
	if err != nil {
		fatal(log, "unable to open opa policy file", err)
	}
	defer policies.Close()

	r := router.New(serviceName)
	r.Handle("/metrics", promhttp.Handler())

	err = graphexplorer.RegisterHandlers(ctx, r, policies, app)
	if err != nil {
		fatal(log, "failed to register api handlers", err)
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting to listen for connections", "port", port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(log, "failed to listen for connections", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down gracefully", "err", err.Error())
	}
}

func loadConfiguration(path string) (*explorer.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()

	return explorer.LoadConfiguration(f)
}

// applyDefaultBatchSize lets DETAILS_BATCH_SIZE set the batch size of connections that do not configure one
func applyDefaultBatchSize(ctx context.Context, log *slog.Logger, cfg *explorer.Config) {
	value := env.GetVariableOrDefault(ctx, "DETAILS_BATCH_SIZE", "")
	if value == "" {
		return
	}

	size, err := strconv.Atoi(value)
	if err != nil || size < 1 {
		log.Warn("ignoring invalid details batch size", "value", value)
		return
	}

	for i := range cfg.Connections {
		if cfg.Connections[i].BatchSize == 0 {
			cfg.Connections[i].BatchSize = size
		}
	}
}

// connectSessions returns a nil pool when no database host has been configured
func connectSessions(ctx context.Context) (*pgxpool.Pool, error) {
	cfg := sessions.LoadConfiguration(ctx)
	if !cfg.Enabled() {
		return nil, nil
	}

	return sessions.Connect(ctx, cfg)
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "err", err.Error())
	os.Exit(1)
}
