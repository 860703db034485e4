// Package publish hands finished reports to file and Redis sinks.
package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hoops-edge/internal/config"
	"github.com/yourusername/hoops-edge/internal/models"
)

// Sink receives one finished report.
type Sink interface {
	Publish(ctx context.Context, report *models.Report) error
	Name() string
}

// Publisher fans a report out to every configured sink.
type Publisher struct {
	sinks  []Sink
	client *redis.Client
	logger *logrus.Logger
}

// NewPublisher builds a file sink per configured format and, when enabled, the Redis sink.
func NewPublisher(cfg config.PublishConfig, logger *logrus.Logger) (*Publisher, error) {
	p := &Publisher{logger: logger}
	for _, format := range cfg.Formats {
		sink, err := NewFileSink(cfg.OutputDir, format)
		if err != nil {
			return nil, err
		}
		p.sinks = append(p.sinks, sink)
	}
	if cfg.Redis.Enabled {
		p.client = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		p.sinks = append(p.sinks, NewRedisSink(p.client, cfg.Redis.Key, cfg.Redis.TTL))
	}
	return p, nil
}

// NewPublisherWithSinks creates a publisher over explicit sinks.
func NewPublisherWithSinks(logger *logrus.Logger, sinks ...Sink) *Publisher {
	return &Publisher{sinks: sinks, logger: logger}
}

// Publish sends the report to every sink. A failing sink does not stop the others.
func (p *Publisher) Publish(ctx context.Context, report *models.Report) error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, report); err != nil {
			p.logger.WithError(err).WithField("sink", sink.Name()).Error("Failed to publish report")
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		p.logger.WithFields(logrus.Fields{
			"sink":   sink.Name(),
			"run_id": report.RunID,
			"rows":   report.RowCount(),
		}).Info("Report published")
	}
	return errors.Join(errs...)
}

// Close releases the Redis client, if any.
func (p *Publisher) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
