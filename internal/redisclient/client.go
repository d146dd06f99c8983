package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// SaveCartSnapshot persists a serialized cart under its session key. Carts are
// written after every transition, mirroring the storefront's storage slot.
func (c *Client) SaveCartSnapshot(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error {
	key := fmt.Sprintf("cart:%s", sessionID)
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// LoadCartSnapshot retrieves the serialized cart for a session. Returns nil
// when the session has no saved cart yet.
func (c *Client) LoadCartSnapshot(ctx context.Context, sessionID string) ([]byte, error) {
	key := fmt.Sprintf("cart:%s", sessionID)
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
	return data, nil
}

// DeleteCartSnapshot drops a session's saved cart
func (c *Client) DeleteCartSnapshot(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("cart:%s", sessionID)).Err()
}

// NextPedidoNumber allocates the next order number from a monotonic sequence
func (c *Client) NextPedidoNumber(ctx context.Context) (string, error) {
	seq, err := c.rdb.Incr(ctx, "pedidos:seq").Result()
	if err != nil {
		return "", fmt.Errorf("failed to allocate pedido number: %w", err)
	}
	return fmt.Sprintf("PED-%06d", seq), nil
}
