package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hoops-edge/internal/models"
)

func testClientConfig() HTTPClientConfig {
	cfg := DefaultHTTPClientConfig()
	cfg.Timeout = 2 * time.Second
	cfg.MaxRetries = 2
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 2 * time.Millisecond
	cfg.RateLimit = 1000
	cfg.BreakerMaxFailures = 2
	cfg.BreakerTimeout = time.Minute
	return cfg
}

func newTestFeed(t *testing.T, cfg HTTPClientConfig, handler http.HandlerFunc) (*FeedClient, *RateLimitedHTTPClient) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewRateLimitedHTTPClient(cfg, nil)
	return NewFeedClient(client, server.URL+"/", "secret", nil), client
}

func TestFetchGameLogs(t *testing.T) {
	feed, _ := newTestFeed(t, testClientConfig(), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/game-logs", r.URL.Path)
		assert.Equal(t, "2022-23", r.URL.Query().Get("season"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]models.GameLog{{
			PlayerName: "jayson-tatum", TeamName: "boston-celtics", Season: "2022-23",
			GameDate: "Fri 12/16", Opponent: "@MIA", Result: "W112-104", Points: 31,
		}})
	})

	logs, err := feed.FetchGameLogs(context.Background(), "2022-23")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 31, logs[0].Points)
	assert.Equal(t, "@MIA", logs[0].Opponent)
	assert.Equal(t, feedSourceName, feed.Name())
}

func TestFetchProps(t *testing.T) {
	feed, _ := newTestFeed(t, testClientConfig(), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/props", r.URL.Path)
		assert.Equal(t, "12-20-2022", r.URL.Query().Get("date"))
		assert.Equal(t, "points", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`[{"player_name":"a","prop_name":"points","over_num":20.5,"over_odds":"-110"}]`))
	})

	props, err := feed.FetchProps(context.Background(), "2022-23", models.PropPoints, "12-20-2022")
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, 20.5, props[0].OverLine)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	feed, _ := newTestFeed(t, testClientConfig(), func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	rows, err := feed.FetchTeamStats(context.Background(), "2022-23")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchServerErrorIsUpstreamUnavailable(t *testing.T) {
	var calls atomic.Int32
	feed, _ := newTestFeed(t, testClientConfig(), func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := feed.FetchTeamStats(context.Background(), "2022-23")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUpstreamUnavailable))

	var dsErr *DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeServerError, dsErr.Code)
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
}

func TestCircuitBreakerOpens(t *testing.T) {
	cfg := testClientConfig()
	cfg.MaxRetries = 0

	var calls atomic.Int32
	feed, client := newTestFeed(t, cfg, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	for i := 0; i < 2; i++ {
		_, err := feed.FetchGameLogs(context.Background(), "2022-23")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, client.State())

	_, err := feed.FetchGameLogs(context.Background(), "2022-23")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.True(t, errors.Is(err, models.ErrUpstreamUnavailable))
	assert.Equal(t, int32(2), calls.Load(), "an open breaker does not reach the server")
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	cfg := testClientConfig()
	cfg.MaxRetries = 0

	feed, client := newTestFeed(t, cfg, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	for i := 0; i < 3; i++ {
		_, err := feed.FetchGameLogs(context.Background(), "2022-23")
		var dsErr *DataSourceError
		require.True(t, errors.As(err, &dsErr))
		assert.Equal(t, ErrCodeAuthenticationFailed, dsErr.Code)
		assert.False(t, errors.Is(err, models.ErrUpstreamUnavailable))
	}
	assert.Equal(t, gobreaker.StateClosed, client.State())
}

func TestFetchNotFoundAndInvalidJSON(t *testing.T) {
	feed, _ := newTestFeed(t, testClientConfig(), func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/props" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := feed.FetchProps(context.Background(), "2022-23", models.PropPoints, "12-20-2022")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = feed.FetchGameLogs(context.Background(), "2022-23")
	var dsErr *DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeInvalidData, dsErr.Code)
}
