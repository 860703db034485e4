package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/hoops-edge/internal/datasource"
	"github.com/yourusername/hoops-edge/internal/logger"
	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/publish"
	"github.com/yourusername/hoops-edge/internal/repository"
	"github.com/yourusername/hoops-edge/internal/service"
)

var (
	seasonFlag string
	dateFlag   string
	propFlag   string
)

func init() {
	ingestCmd.Flags().StringVar(&seasonFlag, "season", "", "Season to ingest (defaults to seasons.current)")
	ingestCmd.Flags().StringVar(&dateFlag, "date", "", "Prop date to ingest, MM-DD-YYYY (props are skipped when empty)")
	ingestCmd.Flags().StringVar(&propFlag, "prop", models.PropPoints, "Prop type")

	correlationsCmd.Flags().StringVar(&seasonFlag, "season", "", "Season to derive profiles for (defaults to seasons.current)")

	trainCmd.Flags().StringVar(&propFlag, "prop", models.PropPoints, "Prop type")

	reportCmd.Flags().StringVar(&dateFlag, "date", "", "Prop date, MM-DD-YYYY")
	reportCmd.Flags().StringVar(&propFlag, "prop", models.PropPoints, "Prop type")
	_ = reportCmd.MarkFlagRequired("date")
}

func season() string {
	if seasonFlag != "" {
		return seasonFlag
	}
	return cfg.Seasons.Current
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch team stats, game logs and props from the stats feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, repos, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		m, err := runIngest(ctx, repos, service.IngestRequest{Season: season(), PropType: propFlag, PropDate: dateFlag})
		if m != nil {
			fmt.Println(m)
		}
		return err
	},
}

func runIngest(ctx context.Context, repos *repository.Repositories, req service.IngestRequest) (*service.IngestionMetrics, error) {
	feed := datasource.NewStatsFeed(cfg.Feed, appLog)
	svc := service.NewIngestionService(feed, repos, appLog, 0)
	return svc.Ingest(ctx, req)
}

var correlationsCmd = &cobra.Command{
	Use:   "correlations",
	Short: "Derive per-player correlation profiles for a season",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, repos, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		result, err := runCorrelations(ctx, repos, season())
		if err != nil {
			return err
		}
		fmt.Printf("Season %s: %d players, %d profiles, %d insufficient, %d skipped game logs, %d failures (%s)\n",
			result.Season, result.Players, result.Profiles, result.Insufficient, result.Skipped, len(result.Failures), result.Duration)
		for _, f := range result.Failures {
			fmt.Printf("  %s\n", f)
		}
		for _, signal := range models.AllSignals {
			fmt.Printf("  %-14s mean=%.3f\n", signal, result.Summary[string(signal)])
		}
		return nil
	},
}

func runCorrelations(ctx context.Context, repos *repository.Repositories, season string) (*service.CorrelationRunResult, error) {
	svc := service.NewCorrelationService(repos, cfg.CorrelationParams(), logger.NewEngineLogger(appLog))
	return svc.Run(ctx, season)
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train and evaluate the over/under classifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, repos, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		league, err := service.LoadLeague(ctx, repos.TeamStats, cfg.Seasons.Current)
		if err != nil {
			return err
		}
		_, eval, err := newTrainingService(repos).Train(ctx, league, propFlag)
		if err != nil {
			return err
		}
		fmt.Println(eval.String())
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate and publish the projection report for a prop date",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, repos, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		report, err := runReport(ctx, repos, service.ReportRequest{PropDate: dateFlag, PropType: propFlag})
		if err != nil {
			return err
		}
		fmt.Printf("Report %s for %s %s: %d teams, %d rows, %d failures\n",
			report.RunID, report.PropType, report.PropDate, len(report.Teams), report.RowCount(), len(report.Failures))
		return nil
	},
}

func runReport(ctx context.Context, repos *repository.Repositories, req service.ReportRequest) (*models.Report, error) {
	report, err := newReportService(repos).Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	publisher, err := publish.NewPublisher(cfg.Publish, appLog)
	if err != nil {
		return nil, err
	}
	defer publisher.Close()

	if err := publisher.Publish(ctx, report); err != nil {
		return report, fmt.Errorf("failed to publish report: %w", err)
	}
	return report, nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database connectivity and the latest report runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		db, repos, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Print("Database: ")
		if err := db.Ping(ctx); err != nil {
			fmt.Printf("UNAVAILABLE (%v)\n", err)
		} else {
			fmt.Println("ONLINE")
		}

		runs, err := repos.ReportRuns.Latest(ctx, 10)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No report runs recorded")
			return nil
		}
		fmt.Println("Latest report runs:")
		for _, run := range runs {
			appLog.WithFields(logrus.Fields{"run_id": run.RunID}).Debug("Report run")
			fmt.Printf("  %s  %-8s %s  rows=%d failures=%d\n",
				run.CreatedAt.UTC().Format(time.RFC3339), run.PropType, run.PropDate, run.Rows, run.Failures)
		}
		return nil
	},
}
