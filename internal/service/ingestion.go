// Package service runs ingestion, correlation runs and the report pipeline over the repositories.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/hoops-edge/internal/datasource"
	"github.com/yourusername/hoops-edge/internal/metrics"
	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/repository"
)

const defaultBatchSize = 500

// IngestRequest selects what one ingestion run pulls.
type IngestRequest struct {
	Season   string
	PropType string
	// PropDate is "MM-DD-YYYY". Empty skips props.
	PropDate string
}

// IngestionService handles the data ingestion workflow
type IngestionService struct {
	feed       datasource.StatsFeed
	repos      *repository.Repositories
	validator  *DataValidator
	normalizer *DataNormalizer
	logger     *logrus.Logger
	batchSize  int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	feed datasource.StatsFeed,
	repos *repository.Repositories,
	logger *logrus.Logger,
	batchSize int,
) *IngestionService {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &IngestionService{
		feed:       feed,
		repos:      repos,
		validator:  NewDataValidator(logger),
		normalizer: NewDataNormalizer(logger),
		logger:     logger,
		batchSize:  batchSize,
	}
}

// Ingest pulls team stats, game logs and props for the request. A failure in one
// kind is recorded and the remaining kinds still run; the joined errors are returned.
func (s *IngestionService) Ingest(ctx context.Context, req IngestRequest) (*IngestionMetrics, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	m := NewIngestionMetrics()
	log := s.logger.WithFields(logrus.Fields{
		"run_id": m.RunID,
		"source": s.feed.Name(),
		"season": req.Season,
	})
	log.Info("Starting ingestion")

	var errs []error
	if err := s.ingestTeamStats(ctx, req.Season, m); err != nil {
		errs = append(errs, err)
	}
	if err := s.ingestGameLogs(ctx, req.Season, m); err != nil {
		errs = append(errs, err)
	}
	if req.PropDate != "" {
		if err := s.ingestProps(ctx, req, m); err != nil {
			errs = append(errs, err)
		}
	}

	m.Finish()
	metrics.RecordRun("ingest", m.Duration.Seconds())
	log.WithField("metrics", m.String()).Info("Ingestion completed")

	return m, errors.Join(errs...)
}

func (r IngestRequest) validate() error {
	if _, _, err := nba.SeasonYears(r.Season); err != nil {
		return models.NewValidationError("season", fmt.Sprintf("invalid season %q", r.Season))
	}
	if r.PropDate == "" {
		return nil
	}
	if _, err := nba.PropDate(r.PropDate); err != nil {
		return models.NewValidationError("prop_date", fmt.Sprintf("invalid prop date %q", r.PropDate))
	}
	switch r.PropType {
	case models.PropPoints, models.PropRebounds, models.PropThrees:
		return nil
	}
	return models.NewValidationError("prop_type", fmt.Sprintf("unknown prop type %q", r.PropType))
}

// ingestTeamStats replaces the season's team table when at least one row is valid.
func (s *IngestionService) ingestTeamStats(ctx context.Context, season string, m *IngestionMetrics) error {
	rows, err := s.feed.FetchTeamStats(ctx, season)
	if err != nil {
		m.RecordError(KindTeamStats)
		return fmt.Errorf("failed to fetch team stats: %w", err)
	}
	m.RecordFetched(KindTeamStats, len(rows))

	valid := make([]models.TeamSeasonStat, 0, len(rows))
	for _, row := range rows {
		row = s.normalizer.NormalizeTeamStat(row)
		if row.Season == "" {
			row.Season = season
		}
		if issues := s.validator.ValidateTeamStat(&row); len(issues) > 0 {
			m.RecordInvalid(KindTeamStats)
			continue
		}
		if row.Season != season {
			m.RecordInvalid(KindTeamStats)
			continue
		}
		valid = append(valid, row)
	}
	if len(valid) == 0 {
		s.logger.WithField("season", season).Warn("No valid team stats, keeping stored season")
		return nil
	}

	if err := s.repos.TeamStats.ReplaceSeason(ctx, season, valid); err != nil {
		m.RecordError(KindTeamStats)
		return fmt.Errorf("failed to store team stats: %w", err)
	}
	m.RecordStored(KindTeamStats, len(valid))
	return nil
}

// ingestGameLogs upserts valid logs in batches. A failed batch is counted and skipped.
func (s *IngestionService) ingestGameLogs(ctx context.Context, season string, m *IngestionMetrics) error {
	logs, err := s.feed.FetchGameLogs(ctx, season)
	if err != nil {
		m.RecordError(KindGameLogs)
		return fmt.Errorf("failed to fetch game logs: %w", err)
	}
	m.RecordFetched(KindGameLogs, len(logs))

	valid := make([]models.GameLog, 0, len(logs))
	for _, gl := range logs {
		gl = s.normalizer.NormalizeGameLog(gl)
		if gl.Season == "" {
			gl.Season = season
		}
		if issues := s.validator.ValidateGameLog(&gl); len(issues) > 0 {
			m.RecordInvalid(KindGameLogs)
			continue
		}
		valid = append(valid, gl)
	}

	var failed int
	for start := 0; start < len(valid); start += s.batchSize {
		end := start + s.batchSize
		if end > len(valid) {
			end = len(valid)
		}
		n, err := s.repos.GameLogs.UpsertBatch(ctx, valid[start:end])
		if err != nil {
			m.RecordError(KindGameLogs)
			failed++
			s.logger.WithError(err).WithField("batch_start", start).Error("Failed to upsert game log batch")
			continue
		}
		m.RecordStored(KindGameLogs, n)
	}
	if failed > 0 {
		return fmt.Errorf("%d game log batches failed", failed)
	}
	return nil
}

// ingestProps appends the date's snapshots.
func (s *IngestionService) ingestProps(ctx context.Context, req IngestRequest, m *IngestionMetrics) error {
	props, err := s.feed.FetchProps(ctx, req.Season, req.PropType, req.PropDate)
	if err != nil {
		m.RecordError(KindProps)
		return fmt.Errorf("failed to fetch props: %w", err)
	}
	m.RecordFetched(KindProps, len(props))

	valid := make([]models.PropLine, 0, len(props))
	for _, prop := range props {
		prop = s.normalizer.NormalizePropLine(prop)
		if prop.Season == "" {
			prop.Season = req.Season
		}
		if prop.ScrapedDate == "" {
			prop.ScrapedDate = req.PropDate
		}
		if issues := s.validator.ValidatePropLine(&prop); len(issues) > 0 {
			m.RecordInvalid(KindProps)
			continue
		}
		valid = append(valid, prop)
	}
	if len(valid) == 0 {
		return nil
	}

	n, err := s.repos.Props.InsertBatch(ctx, valid)
	if err != nil {
		m.RecordError(KindProps)
		return fmt.Errorf("failed to store props: %w", err)
	}
	m.RecordStored(KindProps, n)
	return nil
}
