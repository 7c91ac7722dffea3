package redis

import (
	"context"
	"fmt"
	"time"

	redisV9 "github.com/redis/go-redis/v9"

	"github.com/batchline/batchline/pkg/settings"
	"github.com/batchline/batchline/pkg/utils"
)

const (
	defaultPoolSize        = 10
	defaultMinIdleConns    = 5
	defaultPoolTimeout     = 5
	defaultDialTimeout     = 5
	defaultReadTimeout     = 3
	defaultWriteTimeout    = 3
	defaultMaxRetries      = 3
	defaultMinRetryBackoff = 300 // millis
	defaultMaxRetryBackoff = 500 // millis
)

// Client represents a Redis connection
type Client struct {
	client *redisV9.Client
	config *settings.Redis
}

// connect initializes the Redis client
func (c *Client) connect() error {
	c.setDefaultConfig()

	addr := c.config.Host
	if c.config.Port > 0 {
		addr = fmt.Sprintf("%s:%d", addr, c.config.Port)
	}

	c.client = redisV9.NewClient(&redisV9.Options{
		Addr:            addr,
		Password:        c.config.Password,
		DB:              c.config.Database,
		PoolSize:        c.config.PoolSize,
		MinIdleConns:    c.config.MinIdleConns,
		MaxRetries:      c.config.MaxRetries,
		DialTimeout:     utils.ToDuration(c.config.DialTimeout),
		ReadTimeout:     utils.ToDuration(c.config.ReadTimeout),
		WriteTimeout:    utils.ToDuration(c.config.WriteTimeout),
		PoolTimeout:     utils.ToDuration(c.config.PoolTimeout),
		MinRetryBackoff: utils.ToDurationMs(c.config.MinRetryBackoff),
		MaxRetryBackoff: utils.ToDurationMs(c.config.MaxRetryBackoff),
	})

	// Ping test
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPingFailed, err)
	}

	return nil
}

// setDefaultConfig sets default values for Redis configuration
func (c *Client) setDefaultConfig() {
	if c.config.PoolSize == 0 {
		c.config.PoolSize = defaultPoolSize
	}
	if c.config.MinIdleConns == 0 {
		c.config.MinIdleConns = defaultMinIdleConns
	}
	if c.config.PoolTimeout == 0 {
		c.config.PoolTimeout = defaultPoolTimeout
	}
	if c.config.DialTimeout == 0 {
		c.config.DialTimeout = defaultDialTimeout
	}
	if c.config.ReadTimeout == 0 {
		c.config.ReadTimeout = defaultReadTimeout
	}
	if c.config.WriteTimeout == 0 {
		c.config.WriteTimeout = defaultWriteTimeout
	}
	if c.config.MaxRetries == 0 {
		c.config.MaxRetries = defaultMaxRetries
	}
	if c.config.MinRetryBackoff == 0 {
		c.config.MinRetryBackoff = defaultMinRetryBackoff
	}
	if c.config.MaxRetryBackoff == 0 {
		c.config.MaxRetryBackoff = defaultMaxRetryBackoff
	}
}

// Redis returns the underlying go-redis client
func (c *Client) Redis() *redisV9.Client {
	return c.client
}

// Close closes the connection
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
