package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/hoops-edge/internal/config"
	"github.com/yourusername/hoops-edge/internal/database"
	"github.com/yourusername/hoops-edge/internal/logger"
	"github.com/yourusername/hoops-edge/internal/repository"
	"github.com/yourusername/hoops-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(ingestCmd, correlationsCmd, trainCmd, reportCmd, scheduleCmd, statusCmd)
}

var rootCmd = &cobra.Command{
	Use:     "hoops-edge",
	Short:   "Basketball prop projection and classification engine",
	Long:    `Ingests game logs, team stats and prop lines, derives correlation profiles, and publishes daily projection reports.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the environment may already be set.
		_ = godotenv.Load(".env")

		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		return err
	}
	return config.Validate(cfg)
}

// openStore connects to the database and builds the cached repositories.
func openStore(ctx context.Context) (*database.DB, *repository.Repositories, error) {
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repos, err := repository.NewRepositories(db, cfg.Cache.TTL)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	return db, repos, nil
}

func newTrainingService(repos *repository.Repositories) *service.TrainingService {
	return service.NewTrainingService(
		repos,
		service.Seasons{Current: cfg.Seasons.Current, Last: cfg.Seasons.Last},
		cfg.FeatureParams(),
		cfg.ClassifierParams(),
		logger.NewModelLogger(appLog),
	)
}

func newReportService(repos *repository.Repositories) *service.ReportService {
	return service.NewReportService(
		newTrainingService(repos),
		service.ReportParams{
			Projection:    cfg.ProjectionParams(),
			HitRateBounds: cfg.Engine.MeanBounds(),
			AltLines:      cfg.Engine.AltLines,
			RestCeiling:   cfg.Engine.RestCeilingDays,
		},
		logger.NewEngineLogger(appLog),
		logger.NewModelLogger(appLog),
	)
}
