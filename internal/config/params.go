package config

import (
	"github.com/yourusername/hoops-edge/internal/classifier"
	"github.com/yourusername/hoops-edge/internal/correlation"
	"github.com/yourusername/hoops-edge/internal/projection"
	"github.com/yourusername/hoops-edge/internal/stats"
)

// ProjectionBounds are the outlier bounds applied before projecting.
func (e EngineConfig) ProjectionBounds() stats.Bounds {
	return stats.Bounds{Lower: e.ProjectionLower, Upper: e.ProjectionUpper}
}

// MeanBounds are the outlier bounds applied before hit rates and plain means.
func (e EngineConfig) MeanBounds() stats.Bounds {
	return stats.Bounds{Lower: e.MeanLower, Upper: e.MeanUpper}
}

// ProjectionParams maps the engine section onto the projection model.
func (c *Config) ProjectionParams() projection.Params {
	p := projection.DefaultParams()
	e := c.Engine
	p.Bounds = e.ProjectionBounds()
	p.CorrelationCap = e.CorrelationCap
	p.WeightScale = e.WeightScale
	p.ThreePointFreq = e.ThreePointFreq
	p.TwoPointFreq = e.TwoPointFreq
	p.PaceN = e.PaceN
	p.ThreePtN = e.ThreePtN
	p.TwoPtN = e.TwoPtN
	p.DefReboundN = e.DefReboundN
	p.BigFavoriteSpread = e.BigFavoriteSpread
	p.BigFavoriteWeight = e.BigFavoriteWeight
	p.HighTotal = e.HighTotal
	p.LowTotal = e.LowTotal
	return p
}

// CorrelationParams maps the engine section onto the correlation engine.
func (c *Config) CorrelationParams() correlation.Params {
	return correlation.Params{
		MinGames:    c.Engine.MinCorrelationGames,
		RestCeiling: c.Engine.RestCeilingDays,
	}
}

// FeatureParams maps the engine section onto classifier feature engineering.
func (c *Config) FeatureParams() classifier.FeatureParams {
	return classifier.FeatureParams{
		Bounds:             c.Engine.ProjectionBounds(),
		MinutesFloor:       c.Engine.MinutesFloor,
		RecentGames:        c.Engine.RecentGames,
		RecentMinutesFloor: c.Engine.RecentMinutesFloor,
	}
}

// ClassifierParams maps the classifier section onto training.
func (c *Config) ClassifierParams() classifier.Params {
	grid := make([]float64, len(c.Classifier.CGrid))
	copy(grid, c.Classifier.CGrid)
	return classifier.Params{
		Folds:             c.Classifier.Folds,
		TestSize:          c.Classifier.TestSize,
		Seed:              c.Classifier.Seed,
		Cs:                grid,
		MaxIterations:     c.Classifier.MaxIterations,
		DecisionThreshold: c.Engine.DecisionThreshold,
	}
}
