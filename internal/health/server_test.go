package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hoops-edge/internal/metrics"
)

type fakeDB struct{ err error }

func (f fakeDB) Ping(context.Context) error { return f.err }

type fakeJobs struct {
	running bool
	next    time.Time
}

func (f fakeJobs) IsRunning() bool    { return f.running }
func (f fakeJobs) NextRun() time.Time { return f.next }

func newTestServer(db DatabasePinger, jobs JobStatus) *Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewServer(Config{ServiceName: "hoops-edge", Version: "test", Logger: logger, DB: db, Jobs: jobs})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(nil, nil).Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "hoops-edge", body.Service)
	assert.Equal(t, "test", body.Version)
}

func TestReady(t *testing.T) {
	next := time.Date(2023, 1, 2, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		ready      bool
		db         DatabasePinger
		jobs       JobStatus
		wantStatus int
		wantChecks map[string]string
		wantNext   string
	}{
		{
			name:       "not marked ready",
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"service": "not_ready"},
		},
		{
			name:       "all healthy",
			ready:      true,
			db:         fakeDB{},
			jobs:       fakeJobs{running: true, next: next},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"service": "ok", "database": "ok", "scheduler": "ok"},
			wantNext:   "2023-01-02T15:00:00Z",
		},
		{
			name:       "database down",
			ready:      true,
			db:         fakeDB{err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"service": "ok", "database": "error: connection refused"},
		},
		{
			name:       "scheduler stopped",
			ready:      true,
			jobs:       fakeJobs{},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"service": "ok", "scheduler": "stopped"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.db, tt.jobs)
			s.SetReady(tt.ready)

			rec := get(t, s.Handler(), "/ready")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ReadyResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantChecks, body.Checks)
			assert.Equal(t, tt.wantNext, body.NextRun)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.InitRegistry()
	metrics.RecordProjection()

	rec := get(t, newTestServer(nil, nil).Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hoops_edge_projections_total")
}
