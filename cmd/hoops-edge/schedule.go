package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/hoops-edge/internal/health"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/repository"
	"github.com/yourusername/hoops-edge/internal/scheduler"
	"github.com/yourusername/hoops-edge/internal/service"
)

const jobTimeout = 30 * time.Minute

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run ingestion, correlations and the daily report on their cron schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		db, repos, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		sched := scheduler.NewScheduler(appLog, jobTimeout)
		if err := scheduleJobs(sched, repos); err != nil {
			return err
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		var healthServer *health.Server
		if cfg.Metrics.Enabled {
			healthServer = health.NewServer(health.Config{
				ServiceName: cfg.App.Name,
				Version:     Version,
				Port:        cfg.Metrics.Port,
				Logger:      appLog,
				DB:          db,
				Jobs:        sched,
			})
			if err := healthServer.Start(ctx); err != nil {
				return fmt.Errorf("failed to start health server: %w", err)
			}
		}

		if err := sched.Start(); err != nil {
			return err
		}
		if healthServer != nil {
			healthServer.SetReady(true)
		}

		for _, e := range sched.Entries() {
			appLog.WithFields(logrus.Fields{"job": e.Name, "spec": e.Spec, "next": e.Next}).Info("Job scheduled")
		}

		sig := <-sigChan
		appLog.WithField("signal", sig).Info("Shutdown signal received")
		if healthServer != nil {
			healthServer.SetReady(false)
		}
		cancel()

		stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Minute)
		defer stopCancel()
		if err := sched.Stop(stopCtx); err != nil {
			appLog.WithError(err).Error("Error during scheduler shutdown")
		}

		appLog.Info("hoops-edge scheduler shut down")
		return nil
	},
}

// scheduleJobs registers the daily pipeline. Ingestion pulls today's props, and the
// report job refreshes profiles before projecting today's slate.
func scheduleJobs(sched *scheduler.Scheduler, repos *repository.Repositories) error {
	propType := cfg.Schedule.PropType

	if err := sched.Schedule("ingest", cfg.Schedule.IngestCron, func(ctx context.Context) error {
		_, err := runIngest(ctx, repos, service.IngestRequest{
			Season:   cfg.Seasons.Current,
			PropType: propType,
			PropDate: today(),
		})
		return err
	}); err != nil {
		return err
	}

	return sched.Schedule("report", cfg.Schedule.ReportCron, func(ctx context.Context) error {
		if _, err := runCorrelations(ctx, repos, cfg.Seasons.Current); err != nil {
			return fmt.Errorf("correlations: %w", err)
		}
		_, err := runReport(ctx, repos, service.ReportRequest{PropDate: today(), PropType: propType})
		return err
	})
}

func today() string {
	return nba.FormatPropDate(time.Now().UTC())
}
