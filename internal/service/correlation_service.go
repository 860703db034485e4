package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/hoops-edge/internal/correlation"
	"github.com/yourusername/hoops-edge/internal/logger"
	"github.com/yourusername/hoops-edge/internal/metrics"
	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/repository"
)

// CorrelationRunResult summarizes one correlation run.
type CorrelationRunResult struct {
	Season   string
	Players  int
	Profiles int
	// Insufficient counts players with fewer than two game logs.
	Insufficient int
	Skipped      int
	Failures     []*models.PlayerError
	Summary      map[string]float64
	Duration     time.Duration
}

// CorrelationService derives and stores a correlation profile for every player in a season.
type CorrelationService struct {
	repos  *repository.Repositories
	params correlation.Params
	logger *logger.EngineLogger
}

// NewCorrelationService creates a correlation service.
func NewCorrelationService(repos *repository.Repositories, params correlation.Params, engineLogger *logger.EngineLogger) *CorrelationService {
	return &CorrelationService{repos: repos, params: params, logger: engineLogger}
}

// Run replaces the profile of every player and team with logs in season. A failure is
// scoped to that player; the run continues with the next one.
func (s *CorrelationService) Run(ctx context.Context, season string) (*CorrelationRunResult, error) {
	start := time.Now()

	league, err := LoadLeague(ctx, s.repos.TeamStats, season)
	if err != nil {
		return nil, err
	}
	players, err := s.repos.GameLogs.ListPlayers(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for %s: %w", season, err)
	}

	engine := correlation.NewEngine(league, s.params)
	result := &CorrelationRunResult{Season: season, Players: len(players)}

	for _, pt := range players {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		err := s.runPlayer(ctx, engine, season, pt, result)
		switch {
		case err == nil:
		case errors.Is(err, models.ErrInsufficientSample):
			result.Insufficient++
			s.logger.WithField("player", pt.PlayerName).Debug(err.Error())
		default:
			result.Failures = append(result.Failures, &models.PlayerError{Player: pt.PlayerName, Team: pt.TeamName, Err: err})
			s.logger.LogPlayerFailed(pt.PlayerName, pt.TeamName, err)
			metrics.RecordPlayerFailed("correlation", failureReason(err))
		}
	}

	profiles, err := s.repos.Correlations.ListBySeason(ctx, season)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load profiles for summary")
	} else {
		result.Summary = correlation.Summarize(profiles)
		s.logger.LogCorrelationSummary(len(profiles), result.Summary)
	}

	result.Duration = time.Since(start)
	metrics.RecordRun("correlations", result.Duration.Seconds())
	reportCacheStats(s.repos)
	return result, nil
}

func (s *CorrelationService) runPlayer(ctx context.Context, engine *correlation.Engine, season string, pt models.PlayerTeam, result *CorrelationRunResult) error {
	logs, err := s.repos.GameLogs.ListByPlayerTeam(ctx, pt.PlayerName, pt.TeamName, season)
	if err != nil {
		return upstream("game logs", err)
	}

	profile, skipped, err := engine.Compute(pt.PlayerName, pt.TeamName, logs)
	if err != nil {
		return err
	}
	for _, sk := range skipped {
		s.logger.LogGameLogSkipped(pt.PlayerName, pt.TeamName, sk.GameDate, sk.Err.Error())
	}
	result.Skipped += len(skipped)
	metrics.RecordGameLogsSkipped(len(skipped))

	if err := s.repos.Correlations.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("failed to store profile: %w: %w", models.ErrUpstreamUnavailable, err)
	}
	result.Profiles++
	metrics.RecordProfileWritten()
	s.logger.LogProfileWritten(pt.PlayerName, pt.TeamName, profile.Games, zeroed(profile))
	return nil
}

func zeroed(p *models.CorrelationProfile) bool {
	for _, signal := range models.AllSignals {
		if p.Get(signal) != 0 {
			return false
		}
	}
	return true
}

// reportCacheStats publishes read-through cache hit ratios when the repositories are cached.
func reportCacheStats(repos *repository.Repositories) {
	if c, ok := repos.GameLogs.(*repository.CachedGameLogRepository); ok {
		_, _, ratio := c.Stats.Ratio()
		metrics.UpdateCacheHitRatio("game_logs", ratio)
	}
	if c, ok := repos.Correlations.(*repository.CachedCorrelationRepository); ok {
		_, _, ratio := c.Stats.Ratio()
		metrics.UpdateCacheHitRatio("correlations", ratio)
	}
}
