// Package datasource fetches game logs, team stats and prop lines from the JSON stats feed.
package datasource

import (
	"context"
	"fmt"

	"github.com/yourusername/hoops-edge/internal/models"
)

// StatsFeed defines the upstream the ingestion service pulls from.
type StatsFeed interface {
	FetchGameLogs(ctx context.Context, season string) ([]models.GameLog, error)
	FetchTeamStats(ctx context.Context, season string) ([]models.TeamSeasonStat, error)
	// FetchProps returns the props captured on date ("MM-DD-YYYY").
	FetchProps(ctx context.Context, season, propType, date string) ([]models.PropLine, error)
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string
	Code    string
	Message string
	Err     error
}

func (e *DataSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s (%v)", e.Source, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Code, e.Message)
}

// Unwrap exposes the cause.
func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// Is classifies network, server and rate-limit failures as models.ErrUpstreamUnavailable.
func (e *DataSourceError) Is(target error) bool {
	if target != models.ErrUpstreamUnavailable {
		return false
	}
	switch e.Code {
	case ErrCodeNetworkError, ErrCodeServerError, ErrCodeRateLimitExceeded:
		return true
	}
	return false
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) *DataSourceError {
	return &DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
