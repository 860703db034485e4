package datasource

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hoops-edge/internal/config"
)

// NewStatsFeed builds the configured feed client.
func NewStatsFeed(cfg config.FeedConfig, logger *logrus.Logger) *FeedClient {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.Timeout
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimitPerSecond
	httpCfg.BreakerMaxFailures = cfg.BreakerMaxFailures
	httpCfg.BreakerTimeout = cfg.BreakerTimeout

	return NewFeedClient(NewRateLimitedHTTPClient(httpCfg, logger), cfg.BaseURL, cfg.APIKey, logger)
}
