// Package redis backs the wallet state store and the transfer-notification
// transport with a single Redis connection: wallet states live in plain keys,
// filter registrations in a set, and event delivery rides pub/sub.
package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

// client wraps one go-redis connection shared by the wallet and
// notification adapters.
type client struct {
	conn *redis.Client
}

// NewClient connects to the Redis instance at addr and verifies the
// connection with a ping before handing it out. The returned client
// implements wallet.BackingStore and reconcile.NotificationSource.
func NewClient(ctx context.Context, addr, username, password string, db int) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{
		conn: conn,
	}, nil
}

// Close releases the underlying connection.
func (c *client) Close() error {
	return c.conn.Close()
}
