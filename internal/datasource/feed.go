package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/hoops-edge/internal/metrics"
	"github.com/yourusername/hoops-edge/internal/models"
)

const feedSourceName = "stats_feed"

// FeedClient implements StatsFeed against the JSON stats feed.
type FeedClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Entry
}

// NewFeedClient creates a stats feed client rooted at baseURL.
func NewFeedClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *FeedClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &FeedClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger.WithField("component", "feed"),
	}
}

// Name returns the name of the data source
func (c *FeedClient) Name() string {
	return feedSourceName
}

// FetchGameLogs retrieves every player game log of a season
func (c *FeedClient) FetchGameLogs(ctx context.Context, season string) ([]models.GameLog, error) {
	var logs []models.GameLog
	err := c.getJSON(ctx, "game_logs", "/v1/game-logs", url.Values{"season": {season}}, &logs)
	return logs, err
}

// FetchTeamStats retrieves every team's season stats
func (c *FeedClient) FetchTeamStats(ctx context.Context, season string) ([]models.TeamSeasonStat, error) {
	var rows []models.TeamSeasonStat
	err := c.getJSON(ctx, "team_stats", "/v1/team-stats", url.Values{"season": {season}}, &rows)
	return rows, err
}

// FetchProps retrieves the prop lines captured on a date
func (c *FeedClient) FetchProps(ctx context.Context, season, propType, date string) ([]models.PropLine, error) {
	var props []models.PropLine
	query := url.Values{"season": {season}, "type": {propType}, "date": {date}}
	err := c.getJSON(ctx, "props", "/v1/props", query, &props)
	return props, err
}

func (c *FeedClient) getJSON(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.RecordFeedRequest(endpoint, status, time.Since(start).Seconds())
	}()

	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return NewDataSourceError(feedSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return NewDataSourceError(feedSourceName, ErrCodeNetworkError, "failed to fetch "+endpoint, err)
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewDataSourceError(feedSourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusNotFound:
		return NewDataSourceError(feedSourceName, ErrCodeNotFound, endpoint+" not found", models.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewDataSourceError(feedSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NewDataSourceError(feedSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(feedSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"query":    query.Encode(),
		"duration": time.Since(start).String(),
	}).Debug("Fetched from stats feed")
	return nil
}
