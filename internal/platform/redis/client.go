package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"chaincerts/internal/platform/config"
)

// Client is the go-redis client backing the wallet slot store, scoped to a
// key prefix.
type Client struct {
	*redis.Client
	prefix string
}

// New dials and pings Redis. An empty URL means Redis is not configured and
// yields a nil client.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout+time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client, prefix: cfg.KeyPrefix}, nil
}

// KeyPrefix is the namespace wallet slot keys are written under.
func (c *Client) KeyPrefix() string {
	return c.prefix
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}

// PoolCollector exposes the connection pool statistics, read at scrape time.
func (c *Client) PoolCollector() prometheus.Collector {
	return &poolCollector{client: c.Client}
}

var (
	poolHitsDesc = prometheus.NewDesc("chaincerts_redis_pool_hits_total",
		"Number of times a free connection was found in the pool", nil, nil)
	poolMissesDesc = prometheus.NewDesc("chaincerts_redis_pool_misses_total",
		"Number of times a free connection was not found in the pool", nil, nil)
	poolTimeoutsDesc = prometheus.NewDesc("chaincerts_redis_pool_timeouts_total",
		"Number of times a wait for a connection timed out", nil, nil)
	poolStaleDesc = prometheus.NewDesc("chaincerts_redis_pool_stale_conns_total",
		"Number of stale connections removed from the pool", nil, nil)
	poolTotalDesc = prometheus.NewDesc("chaincerts_redis_pool_total_conns",
		"Number of connections in the pool", nil, nil)
	poolIdleDesc = prometheus.NewDesc("chaincerts_redis_pool_idle_conns",
		"Number of idle connections in the pool", nil, nil)
)

type poolCollector struct {
	client *redis.Client
}

func (p *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- poolHitsDesc
	ch <- poolMissesDesc
	ch <- poolTimeoutsDesc
	ch <- poolStaleDesc
	ch <- poolTotalDesc
	ch <- poolIdleDesc
}

func (p *poolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := p.client.PoolStats()
	ch <- prometheus.MustNewConstMetric(poolHitsDesc, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(poolMissesDesc, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(poolTimeoutsDesc, prometheus.CounterValue, float64(stats.Timeouts))
	ch <- prometheus.MustNewConstMetric(poolStaleDesc, prometheus.CounterValue, float64(stats.StaleConns))
	ch <- prometheus.MustNewConstMetric(poolTotalDesc, prometheus.GaugeValue, float64(stats.TotalConns))
	ch <- prometheus.MustNewConstMetric(poolIdleDesc, prometheus.GaugeValue, float64(stats.IdleConns))
}
