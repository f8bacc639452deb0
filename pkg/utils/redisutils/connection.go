// The redisutils package simplifies and automates recurring operations like
// connecting to, formatting for, and parsing from Redis.
package redisutils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultAddr string = "localhost:6379"
	TestAddr    string = "localhost:6380"
)

// SetupClient() initializes a new Redis client connected to addr.
// An empty addr means the DefaultAddr.
func SetupClient(addr string) *redis.Client {
	if addr == "" {
		addr = DefaultAddr
	}

	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// SetupTestClient() initializes a new Redis client for testing purposes.
func SetupTestClient() *redis.Client {
	return SetupClient(TestAddr)
}

// Available() returns whether the server behind the client answers a PING within a second.
func Available(ctx context.Context, cl *redis.Client) bool {
	if cl == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return cl.Ping(ctx).Err() == nil
}

// CleanupRedis() cleans up the Redis database between tests to ensure isolation.
func CleanupRedis(client *redis.Client) {
	client.FlushAll(context.Background())
}
