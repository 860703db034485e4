package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/opponent"
	"github.com/yourusername/hoops-edge/internal/repository"
)

// LoadLeague builds the opponent context for season from stored team stats.
func LoadLeague(ctx context.Context, teamStats repository.TeamStatRepository, season string) (*opponent.Context, error) {
	rows, err := teamStats.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load team stats for %s: %w", season, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no team stats for %s: %w", season, models.ErrNotFound)
	}
	return opponent.NewContext(season, rows)
}

// failureReason maps an error to a short metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, models.ErrMissingContext):
		return "missing_context"
	case errors.Is(err, models.ErrInsufficientSample):
		return "insufficient_sample"
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrDegenerateInput):
		return "degenerate_input"
	}
	return "error"
}

// upstream marks a storage failure as fatal for one player's row only.
func upstream(what string, err error) error {
	return fmt.Errorf("failed to load %s: %w: %w", what, models.ErrUpstreamUnavailable, err)
}
