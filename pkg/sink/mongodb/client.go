package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/batchline/batchline/pkg/settings"
	"github.com/batchline/batchline/pkg/utils"
)

const (
	defaultPort    = 27017
	defaultTimeout = 10
)

// Client represents a MongoDB connection
type Client struct {
	client *mongo.Client
	config *settings.MongoDB
}

// New creates a new MongoDB connection
func New(config *settings.MongoDB) (*Client, error) {
	c := &Client{config: config}
	if err := c.Connect(); err != nil {
		return nil, err
	}
	return c, nil
}

// Connect creates a new MongoDB connection
func (c *Client) Connect() error {
	c.setDefaultConfig()

	uri := fmt.Sprintf("mongodb://%s:%d", c.config.Host, c.config.Port)
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(c.config.MaxPoolSize).
		SetMinPoolSize(c.config.MinPoolSize).
		SetMaxConnIdleTime(time.Duration(c.config.MaxConnIdleTime) * time.Second)

	if c.config.Username != "" {
		opts.SetAuth(options.Credential{
			Username: c.config.Username,
			Password: c.config.Password,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.ToDuration(c.config.Timeout))
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectFailed, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrPingFailed, err)
	}

	c.client = client
	return nil
}

func (c *Client) setDefaultConfig() {
	if c.config.Port == 0 {
		c.config.Port = defaultPort
	}
	if c.config.Timeout == 0 {
		c.config.Timeout = defaultTimeout
	}
}

// Collection returns a collection handle in the configured database
func (c *Client) Collection(name string) *mongo.Collection {
	return c.client.Database(c.config.Database).Collection(name)
}

// Close closes the database connection
func (c *Client) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnectFailed, err)
	}
	return nil
}
