// Package redis provides the Redis-backed cache and event publisher
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/infrastructure/config"
)

// ErrCircuitOpen is returned while the breaker rejects calls
var ErrCircuitOpen = errors.New("redis circuit breaker is open")

// Client wraps a go-redis client with a circuit breaker and key namespace
type Client struct {
	client  redis.UniversalClient
	breaker *CircuitBreaker
	prefix  string
	logger  *zap.Logger
}

// NewClient connects to Redis and verifies the connection
func NewClient(cfg config.RedisConfig, addr string, logger *zap.Logger) (*Client, error) {
	opts := &redis.UniversalOptions{
		Addrs:        []string{addr},
		Password:     cfg.Password,
		DB:           cfg.Database,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  10 * time.Second,
	}

	c := NewClientFrom(redis.NewUniversalClient(opts), cfg.KeyPrefix, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		_ = c.client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis client initialized",
		zap.String("addr", addr),
		zap.Int("database", cfg.Database),
		zap.String("key_prefix", cfg.KeyPrefix),
	)
	return c, nil
}

// NewClientFrom wraps an existing go-redis client
func NewClientFrom(client redis.UniversalClient, prefix string, logger *zap.Logger) *Client {
	return &Client{
		client:  client,
		breaker: NewCircuitBreaker(5, 30*time.Second),
		prefix:  prefix,
		logger:  logger,
	}
}

// Ping tests the Redis connection
func (c *Client) Ping(ctx context.Context) error {
	return c.do(func() error { return c.client.Ping(ctx).Err() })
}

// Close closes the underlying connection pool
func (c *Client) Close() error {
	return c.client.Close()
}

// Key namespaces key with the configured prefix
func (c *Client) Key(key string) string {
	return c.prefix + key
}

// do runs op behind the breaker. redis.Nil is a normal outcome, not a failure.
func (c *Client) do(op func() error) error {
	if !c.breaker.AllowRequest() {
		return ErrCircuitOpen
	}
	err := op()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.breaker.RecordFailure()
		return err
	}
	c.breaker.RecordSuccess()
	return err
}
