package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"arbiter-hq/arbiter/pkg/ruleset"
	"arbiter-hq/arbiter/pkg/store/retention"
	"arbiter-hq/arbiter/pkg/telemetry/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the arbiter service",
	Long: `Run loads the rulesets and keeps them hot-reloaded on file changes,
serves Prometheus metrics when configured, and enforces the decision record
retention policy on its cron schedule. It stops on SIGINT or SIGTERM.`,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runService(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector()

	opts := []ruleset.ManagerOption{
		ruleset.WithReloadHook(collector.ObserveReload),
	}
	if cfg.Rulesets.HistoryPath != "" {
		history, err := ruleset.OpenHistory(cfg.Rulesets.HistoryPath)
		if err != nil {
			return err
		}
		defer history.Close()
		opts = append(opts, ruleset.WithHistory(history))
	}

	manager, err := ruleset.NewManager(cfg.Rulesets.Dir, logger, opts...)
	if err != nil {
		return err
	}

	storage, err := buildStorage(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	pruner := retention.NewPruner(storage, &retention.Config{
		RetentionDays: cfg.Retention.Days,
		MaxRecords:    cfg.Retention.MaxRecords,
		PruneSchedule: cfg.Retention.Schedule,
	}, logger)
	scheduler := retention.NewScheduler(pruner, logger)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	if cfg.Telemetry.MetricsListen != "" {
		server := &http.Server{
			Addr:              cfg.Telemetry.MetricsListen,
			Handler:           collector.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics endpoint listening", "addr", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	if cfg.Rulesets.Watch {
		return manager.Watch(ctx)
	}

	<-ctx.Done()
	return nil
}
