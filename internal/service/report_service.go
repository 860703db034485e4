package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/hoops-edge/internal/classifier"
	"github.com/yourusername/hoops-edge/internal/edge"
	"github.com/yourusername/hoops-edge/internal/logger"
	"github.com/yourusername/hoops-edge/internal/metrics"
	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/projection"
	"github.com/yourusername/hoops-edge/internal/stats"
)

// ReportParams configures the report pipeline.
type ReportParams struct {
	Projection projection.Params
	// HitRateBounds filters the games the hit rate is taken over.
	HitRateBounds stats.Bounds
	AltLines      []float64
	RestCeiling   int
}

// ReportRequest selects the props one report covers.
type ReportRequest struct {
	// PropDate is "MM-DD-YYYY".
	PropDate string
	PropType string
}

// ReportService projects, classifies and prices every prop captured on a date.
type ReportService struct {
	training  *TrainingService
	params    ReportParams
	engineLog *logger.EngineLogger
	modelLog  *logger.ModelLogger
}

// NewReportService creates a report service on top of a training service.
func NewReportService(training *TrainingService, params ReportParams, engineLog *logger.EngineLogger, modelLog *logger.ModelLogger) *ReportService {
	return &ReportService{
		training:  training,
		params:    params,
		engineLog: engineLog,
		modelLog:  modelLog,
	}
}

// Generate trains the classifier on the season's labelled props, then builds one row per
// prop on the request date. Rows are grouped by team under the spread of the team's first
// prop. A prop whose row fails is listed in Failures; the run continues.
func (s *ReportService) Generate(ctx context.Context, req ReportRequest) (*models.Report, error) {
	start := time.Now()
	if _, err := nba.PropDate(req.PropDate); err != nil {
		return nil, err
	}

	repos := s.training.repos
	season := s.training.seasons.Current

	league, err := LoadLeague(ctx, repos.TeamStats, season)
	if err != nil {
		return nil, err
	}
	props, err := repos.Props.ListByDate(ctx, season, req.PropType, req.PropDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load props: %w", err)
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("no %s props on %s: %w", req.PropType, req.PropDate, models.ErrNotFound)
	}

	model, _, err := s.training.Train(ctx, league, req.PropType)
	if err != nil {
		return nil, fmt.Errorf("failed to train classifier: %w", err)
	}

	b := &rowBuilder{
		svc:       s,
		model:     model,
		projector: projection.NewModel(league, s.params.Projection),
		features:  classifier.NewFeatureBuilder(league, s.training.features),
		histories: newHistoryLoader(repos, s.training.seasons),
	}

	report := &models.Report{
		RunID:     uuid.New(),
		PropDate:  req.PropDate,
		PropType:  req.PropType,
		CreatedAt: time.Now().UTC(),
	}
	teams := make(map[string]int)

	for _, prop := range props {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := b.build(ctx, prop)
		if err != nil {
			perr := &models.PlayerError{Player: prop.PlayerName, Team: prop.TeamName, Err: err}
			report.Failures = append(report.Failures, perr.Error())
			s.engineLog.LogPlayerFailed(prop.PlayerName, prop.TeamName, err)
			metrics.RecordPlayerFailed("report", failureReason(err))
			continue
		}
		if row == nil {
			continue
		}
		row.RunID = report.RunID

		team := nba.NormalizeTeamName(prop.TeamName)
		idx, ok := teams[team]
		if !ok {
			idx = len(report.Teams)
			teams[team] = idx
			report.Teams = append(report.Teams, models.TeamReport{TeamName: team, Spread: prop.TeamSpread})
		}
		report.Teams[idx].Rows = append(report.Teams[idx].Rows, *row)
	}

	if err := repos.ReportRuns.Save(ctx, report.Summary()); err != nil {
		s.engineLog.WithError(err).Warn("Failed to record report run")
	}
	metrics.RecordReportRows(req.PropType, report.RowCount())
	metrics.RecordRun("report", time.Since(start).Seconds())
	reportCacheStats(repos)

	s.engineLog.WithField("run_id", report.RunID).
		WithField("rows", report.RowCount()).
		WithField("failures", len(report.Failures)).
		Info("Report generated")
	return report, nil
}

// rowBuilder holds the per-run state shared by every row.
type rowBuilder struct {
	svc       *ReportService
	model     *classifier.Model
	projector *projection.Model
	features  *classifier.FeatureBuilder
	histories *historyLoader
}

// build returns nil when the prop has no scoreable alternate line.
func (b *rowBuilder) build(ctx context.Context, prop models.PropLine) (*models.ReportRow, error) {
	s := b.svc
	propDay, err := nba.PropDate(prop.ScrapedDate)
	if err != nil {
		return nil, err
	}

	hist, err := b.histories.load(ctx, prop)
	if err != nil {
		return nil, err
	}
	prior, dates := gamesBefore(hist.Current, propDay)

	profile, err := s.training.repos.Correlations.Get(ctx, prop.PlayerName, nba.NormalizeTeamName(prop.TeamName))
	switch {
	case errors.Is(err, models.ErrNotFound):
		profile = nil
	case err != nil:
		return nil, upstream("correlation profile", err)
	}

	matchup := projection.Matchup{
		Opponent:   prop.OpponentName,
		TeamSpread: prop.TeamSpread,
		GameTotal:  prop.GameTotal,
	}
	if len(dates) > 0 {
		matchup.RestDays = stats.RestDays(propDay, dates, s.params.RestCeiling)
		matchup.RestKnown = true
	}
	result, err := b.projector.Project(prior, profile, matchup)
	if err != nil {
		return nil, err
	}
	for _, d := range result.Dropped {
		s.engineLog.LogOutlierDropped(prop.PlayerName, string(stats.AttrMinutes), d.Value, d.ZScore)
	}
	s.engineLog.LogProjection(prop.PlayerName, prop.OpponentName, result.Base, result.Projection, result.Adjustments)
	metrics.RecordProjection()

	features, featErr := b.features.Build(prop, hist)
	if featErr != nil && !errors.Is(featErr, models.ErrInsufficientSample) {
		return nil, featErr
	}
	alts := b.altLines(features, featErr == nil)
	if featErr != nil || (len(alts) > 0 && allBlank(alts)) {
		reason := "no scoreable alternate line"
		if featErr != nil {
			reason = featErr.Error()
		}
		s.modelLog.LogPredictionSkipped(prop.PlayerName, prop.OverLine, reason)
		return nil, nil
	}

	pred := b.model.Predict(features, prop.OverLine)
	edgeValue, err := edge.ForPrediction(pred, prop.OverOdds, prop.UnderOdds)
	if err != nil {
		s.engineLog.WithError(err).WithField("player", prop.PlayerName).Warn("Edge unavailable")
	}

	filtered, _ := stats.FilterGameLogs(prior, stats.AttrMinutes, s.params.HitRateBounds)
	hitRate, _ := stats.HitRate(filtered, prop.OverLine)

	return &models.ReportRow{
		PlayerName:   prop.PlayerName,
		TeamName:     nba.NormalizeTeamName(prop.TeamName),
		OpponentName: nba.NormalizeTeamName(prop.OpponentName),
		PropType:     prop.PropType,
		Line:         prop.OverLine,
		OverOdds:     prop.OverOdds,
		Projection:   result.Formatted(),
		HitRate:      hitRate,
		Class:        pred.Class(),
		Probability:  formatProbability(pred.Probability),
		Edge:         edgeValue,
		Confident:    pred.Confident,
		AltLines:     alts,
	}, nil
}

// altLines scores every configured alternate line. Without features every line is blank.
func (b *rowBuilder) altLines(features classifier.Features, ok bool) []models.AltLine {
	alts := make([]models.AltLine, len(b.svc.params.AltLines))
	for i, line := range b.svc.params.AltLines {
		alts[i].Line = line
		if !ok {
			continue
		}
		pred := b.model.Predict(features, line)
		alts[i].Class = pred.Class()
		alts[i].Probability = formatProbability(pred.Probability)
	}
	return alts
}

func allBlank(alts []models.AltLine) bool {
	for _, alt := range alts {
		if alt.Class != "" {
			return false
		}
	}
	return true
}

// gamesBefore keeps the logs dated before day, with their calendar dates.
func gamesBefore(logs []models.GameLog, day time.Time) ([]models.GameLog, []time.Time) {
	var prior []models.GameLog
	var dates []time.Time
	for _, gl := range logs {
		d, err := nba.GameDate(gl.Season, gl.GameDate)
		if err != nil || !d.Before(day) {
			continue
		}
		prior = append(prior, gl)
		dates = append(dates, d)
	}
	return prior, dates
}

func formatProbability(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}
