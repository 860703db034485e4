package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/hoops-edge/internal/metrics"
)

// Ingested row kinds
const (
	KindGameLogs  = "game_logs"
	KindTeamStats = "team_stats"
	KindProps     = "props"
)

// KindCounts holds the counters for one row kind.
type KindCounts struct {
	Fetched int
	Stored  int
	Invalid int
	Errors  int
}

// IngestionMetrics tracks statistics about one ingestion run
type IngestionMetrics struct {
	mu        sync.RWMutex
	RunID     uuid.UUID
	StartTime time.Time
	Duration  time.Duration
	counts    map[string]*KindCounts
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		RunID:     uuid.New(),
		StartTime: time.Now(),
		counts:    make(map[string]*KindCounts),
	}
}

func (m *IngestionMetrics) kind(kind string) *KindCounts {
	c, ok := m.counts[kind]
	if !ok {
		c = &KindCounts{}
		m.counts[kind] = c
	}
	return c
}

// RecordFetched adds rows returned by the feed.
func (m *IngestionMetrics) RecordFetched(kind string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kind(kind).Fetched += n
	metrics.RecordIngested(kind, "fetched", n)
}

// RecordStored adds rows written to storage.
func (m *IngestionMetrics) RecordStored(kind string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kind(kind).Stored += n
	metrics.RecordIngested(kind, "stored", n)
}

// RecordInvalid increments the validation failure count
func (m *IngestionMetrics) RecordInvalid(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kind(kind).Invalid++
	metrics.RecordIngested(kind, "invalid", 1)
}

// RecordError increments the fetch or write failure count
func (m *IngestionMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kind(kind).Errors++
	metrics.RecordIngested(kind, "error", 1)
}

// Counts returns a copy of the counters for kind.
func (m *IngestionMetrics) Counts(kind string) KindCounts {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.counts[kind]; ok {
		return *c
	}
	return KindCounts{}
}

// Finish stamps the run duration.
func (m *IngestionMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duration = time.Since(m.StartTime)
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kinds := make([]string, 0, len(m.counts))
	for kind := range m.counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		c := m.counts[kind]
		parts = append(parts, fmt.Sprintf("%s{fetched=%d, stored=%d, invalid=%d, errors=%d}",
			kind, c.Fetched, c.Stored, c.Invalid, c.Errors))
	}
	return fmt.Sprintf("IngestionMetrics{run=%s, %s, duration=%v}", m.RunID, strings.Join(parts, ", "), m.Duration)
}
