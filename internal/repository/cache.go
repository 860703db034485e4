package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/hoops-edge/internal/models"
)

// CacheStats counts read-through cache lookups.
type CacheStats struct {
	hits   atomic.Uint64
	misses atomic.Uint64
}

// Ratio returns hits, misses and the hit ratio.
func (s *CacheStats) Ratio() (hits, misses uint64, ratio float64) {
	hits, misses = s.hits.Load(), s.misses.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return hits, misses, ratio
}

func (s *CacheStats) record(hit bool) {
	if hit {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
}

// CachedGameLogRepository puts a TTL cache in front of game log reads. Any write
// flushes the cache.
type CachedGameLogRepository struct {
	next  GameLogRepository
	cache *cache.Cache
	Stats CacheStats
}

// NewCachedGameLogRepository wraps next with a cache of the given TTL.
func NewCachedGameLogRepository(next GameLogRepository, ttl time.Duration) *CachedGameLogRepository {
	return &CachedGameLogRepository{next: next, cache: cache.New(ttl, 2*ttl)}
}

// UpsertBatch writes through and flushes.
func (c *CachedGameLogRepository) UpsertBatch(ctx context.Context, logs []models.GameLog) (int, error) {
	n, err := c.next.UpsertBatch(ctx, logs)
	c.cache.Flush()
	return n, err
}

// ListByPlayerTeam reads through the cache.
func (c *CachedGameLogRepository) ListByPlayerTeam(ctx context.Context, player, team, season string) ([]models.GameLog, error) {
	key := fmt.Sprintf("team:%s:%s:%s", season, team, player)
	return c.logs(key, func() ([]models.GameLog, error) {
		return c.next.ListByPlayerTeam(ctx, player, team, season)
	})
}

// ListByPlayer reads through the cache.
func (c *CachedGameLogRepository) ListByPlayer(ctx context.Context, player, season string) ([]models.GameLog, error) {
	key := fmt.Sprintf("player:%s:%s", season, player)
	return c.logs(key, func() ([]models.GameLog, error) {
		return c.next.ListByPlayer(ctx, player, season)
	})
}

// ListPlayers is not cached.
func (c *CachedGameLogRepository) ListPlayers(ctx context.Context, season string) ([]models.PlayerTeam, error) {
	return c.next.ListPlayers(ctx, season)
}

func (c *CachedGameLogRepository) logs(key string, load func() ([]models.GameLog, error)) ([]models.GameLog, error) {
	if cached, found := c.cache.Get(key); found {
		c.Stats.record(true)
		return append([]models.GameLog(nil), cached.([]models.GameLog)...), nil
	}
	c.Stats.record(false)

	logs, err := load()
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, append([]models.GameLog(nil), logs...))
	return logs, nil
}

// CachedCorrelationRepository caches profile lookups, including misses.
type CachedCorrelationRepository struct {
	next  CorrelationRepository
	cache *cache.Cache
	Stats CacheStats
}

// NewCachedCorrelationRepository wraps next with a cache of the given TTL.
func NewCachedCorrelationRepository(next CorrelationRepository, ttl time.Duration) *CachedCorrelationRepository {
	return &CachedCorrelationRepository{next: next, cache: cache.New(ttl, 2*ttl)}
}

// Upsert writes through and evicts the player's entry.
func (c *CachedCorrelationRepository) Upsert(ctx context.Context, p *models.CorrelationProfile) error {
	err := c.next.Upsert(ctx, p)
	c.cache.Delete(profileKey(p.PlayerName, p.TeamName))
	return err
}

// Get reads through the cache. A cached nil records a known missing profile.
func (c *CachedCorrelationRepository) Get(ctx context.Context, player, team string) (*models.CorrelationProfile, error) {
	key := profileKey(player, team)
	if cached, found := c.cache.Get(key); found {
		c.Stats.record(true)
		p, _ := cached.(*models.CorrelationProfile)
		if p == nil {
			return nil, models.ErrNotFound
		}
		clone := *p
		return &clone, nil
	}
	c.Stats.record(false)

	p, err := c.next.Get(ctx, player, team)
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.cache.SetDefault(key, (*models.CorrelationProfile)(nil))
		return nil, err
	case err != nil:
		return nil, err
	}
	clone := *p
	c.cache.SetDefault(key, &clone)
	return p, nil
}

// ListBySeason is not cached.
func (c *CachedCorrelationRepository) ListBySeason(ctx context.Context, season string) ([]models.CorrelationProfile, error) {
	return c.next.ListBySeason(ctx, season)
}

func profileKey(player, team string) string {
	return team + ":" + player
}
