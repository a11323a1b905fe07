package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/diwise/graph-explorer/internal/pkg/infrastructure/sessions"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
)

const (
	appName string = "session-cleaner"

	defaultRetentionDays int = 30
)

func main() {
	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	retention := retentionDays(ctx, log)
	cutoff := time.Now().UTC().AddDate(0, 0, -retention)

	log.Debug("begin clean sessions", slog.Time("cutoff", cutoff))

	p, err := sessions.Connect(ctx, sessions.LoadConfiguration(ctx))
	if err != nil {
		log.Error("failed to connect to database", "err", err.Error())
		os.Exit(1)
	}
	defer p.Close()

	repo, err := sessions.NewRepository(ctx, p)
	if err != nil {
		log.Error("failed to open session repository", "err", err.Error())
		os.Exit(1)
	}

	count, err := repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error("failed to delete sessions", "err", err.Error())
		os.Exit(1)
	}

	log.Debug("vacuum")

	err = sessions.Vacuum(ctx, p)
	if err != nil {
		log.Error("failed to vacuum table", "err", err.Error())
		os.Exit(1)
	}

	log.Info("done cleaning", slog.Int64("total", count), slog.Int("retention_days", retention))
}

func retentionDays(ctx context.Context, log *slog.Logger) int {
	value := env.GetVariableOrDefault(ctx, "SESSION_RETENTION_DAYS", strconv.Itoa(defaultRetentionDays))

	days, err := strconv.Atoi(value)
	if err != nil || days < 1 {
		log.Warn("invalid session retention, using default", "value", value, "default", defaultRetentionDays)
		return defaultRetentionDays
	}

	return days
}
