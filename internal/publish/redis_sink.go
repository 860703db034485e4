package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/hoops-edge/internal/models"
)

// MaxReports is how many reports the Redis list keeps.
const MaxReports = 50

// RedisSink pushes each report as JSON onto the head of a Redis list.
type RedisSink struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisSink creates a Redis list sink. A zero ttl keeps the list forever.
func NewRedisSink(client *redis.Client, key string, ttl time.Duration) *RedisSink {
	return &RedisSink{client: client, key: key, ttl: ttl}
}

// Name returns the sink name.
func (s *RedisSink) Name() string {
	return "redis"
}

// Publish pushes the report, trims the list and refreshes its expiry in one transaction.
func (s *RedisSink) Publish(ctx context.Context, report *models.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.key, payload)
		pipe.LTrim(ctx, s.key, 0, MaxReports-1)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key, s.ttl)
		}
		return nil
	})
	return err
}

// Latest returns the most recent report, or nil when the list is empty.
func (s *RedisSink) Latest(ctx context.Context) (*models.Report, error) {
	b, err := s.client.LIndex(ctx, s.key, 0).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report models.Report
	if err := json.Unmarshal(b, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}
