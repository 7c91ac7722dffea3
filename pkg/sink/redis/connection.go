package redis

import (
	"fmt"

	"github.com/batchline/batchline/pkg/settings"
)

// NewConnection creates and returns a new Redis client
func NewConnection(cfg *settings.Redis) (*Client, error) {
	client := &Client{
		config: cfg,
	}

	if err := client.connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return client, nil
}
