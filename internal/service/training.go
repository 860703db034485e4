package service

import (
	"context"
	"time"

	"github.com/yourusername/hoops-edge/internal/classifier"
	"github.com/yourusername/hoops-edge/internal/logger"
	"github.com/yourusername/hoops-edge/internal/metrics"
	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/opponent"
	"github.com/yourusername/hoops-edge/internal/repository"
)

// Seasons names the season a run reads and the one before it.
type Seasons struct {
	Current string
	Last    string
}

// TrainingService labels stored props and fits the over/under classifier.
type TrainingService struct {
	repos    *repository.Repositories
	seasons  Seasons
	features classifier.FeatureParams
	params   classifier.Params
	logger   *logger.ModelLogger
}

// NewTrainingService creates a training service.
func NewTrainingService(
	repos *repository.Repositories,
	seasons Seasons,
	features classifier.FeatureParams,
	params classifier.Params,
	modelLogger *logger.ModelLogger,
) *TrainingService {
	return &TrainingService{
		repos:    repos,
		seasons:  seasons,
		features: features,
		params:   params,
		logger:   modelLogger,
	}
}

// historyLoader memoizes per-player history for one run.
type historyLoader struct {
	repos   *repository.Repositories
	seasons Seasons
	seen    map[models.PlayerTeam]classifier.History
}

func newHistoryLoader(repos *repository.Repositories, seasons Seasons) *historyLoader {
	return &historyLoader{repos: repos, seasons: seasons, seen: make(map[models.PlayerTeam]classifier.History)}
}

// load returns the player's current-season logs for the prop's team and last season's
// logs on any team.
func (h *historyLoader) load(ctx context.Context, prop models.PropLine) (classifier.History, error) {
	key := models.PlayerTeam{PlayerName: prop.PlayerName, TeamName: nba.NormalizeTeamName(prop.TeamName)}
	if hist, ok := h.seen[key]; ok {
		return hist, nil
	}

	current, err := h.repos.GameLogs.ListByPlayerTeam(ctx, key.PlayerName, key.TeamName, h.seasons.Current)
	if err != nil {
		return classifier.History{}, upstream("current season game logs", err)
	}
	var last []models.GameLog
	if h.seasons.Last != "" {
		last, err = h.repos.GameLogs.ListByPlayer(ctx, key.PlayerName, h.seasons.Last)
		if err != nil {
			return classifier.History{}, upstream("last season game logs", err)
		}
	}

	hist := classifier.History{Current: current, Last: last}
	h.seen[key] = hist
	return hist, nil
}

// Dataset labels every stored prop of propType in the current season and builds its
// features. Props without a label or without features are left out.
func (s *TrainingService) Dataset(ctx context.Context, league *opponent.Context, propType string) ([]classifier.Sample, error) {
	props, err := s.repos.Props.ListBySeason(ctx, s.seasons.Current, propType)
	if err != nil {
		return nil, upstream("props", err)
	}

	builder := classifier.NewFeatureBuilder(league, s.features)
	histories := newHistoryLoader(s.repos, s.seasons)

	var samples []classifier.Sample
	var labelled, overs int
	for _, prop := range props {
		hist, err := histories.load(ctx, prop)
		if err != nil {
			return nil, err
		}
		over, err := classifier.Label(prop, hist.Current, s.features.MinutesFloor)
		if err != nil {
			continue
		}
		labelled++

		features, err := builder.Build(prop, hist)
		if err != nil {
			s.logger.LogPredictionSkipped(prop.PlayerName, prop.OverLine, err.Error())
			continue
		}
		if over {
			overs++
		}
		samples = append(samples, classifier.Sample{Prop: prop, Features: features, Over: over})
	}

	var overRate float64
	if len(samples) > 0 {
		overRate = float64(overs) / float64(len(samples))
	}
	s.logger.LogDatasetBuilt(propType, len(props), labelled, len(samples), overRate)
	return samples, nil
}

// Train builds the dataset and fits the classifier.
func (s *TrainingService) Train(ctx context.Context, league *opponent.Context, propType string) (*classifier.Model, classifier.Evaluation, error) {
	samples, err := s.Dataset(ctx, league, propType)
	if err != nil {
		return nil, classifier.Evaluation{}, err
	}

	start := time.Now()
	model, eval, err := classifier.Train(samples, s.params)
	if err != nil {
		return nil, classifier.Evaluation{}, err
	}
	elapsed := time.Since(start).Seconds()

	metrics.RecordTraining(propType, eval.Samples, eval.Recall, elapsed)
	s.logger.LogModelTraining(elapsed, eval.C, eval.CVRecall, eval.Metrics())
	return model, eval, nil
}
