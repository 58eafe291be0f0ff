// Package redis is the Redis-backed transaction status store, used when
// several gateway instances must share webhook reconciliation state.
package redis

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

// client wraps the Redis connection shared by the status store methods.
type client struct {
	conn *redis.Client
}

// NewClient connects to Redis and verifies the connection with a ping
// before handing the store out.
func NewClient(ctx context.Context, addr, username, password string, db int) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis at %s: %w", addr, err)
	}

	return &client{
		conn: conn,
	}, nil
}

// Close releases the underlying connection pool.
func (c *client) Close() error {
	return c.conn.Close()
}
