package config

// Redis backs the response cache for the public catalog endpoints and
// the distributed rate limiter. The client parameters come from
// environment variables. If the connection fails during startup the
// constructor returns nil and callers degrade gracefully by disabling
// caching and rate limiting; the reservation core never depends on it.

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from REDIS_HOST/REDIS_PORT (or
// REDIS_ADDR as a host:port shorthand), REDIS_PASSWORD, REDIS_DB and
// REDIS_TLS. It pings the server once with a short timeout and returns
// nil when the server is unreachable.
func NewRedisClient() *redis.Client {
	opts := &redis.Options{
		Addr:     redisAddr(),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		opts.DB = n
	}
	switch strings.ToLower(os.Getenv("REDIS_TLS")) {
	case "1", "true":
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

func redisAddr() string {
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		return host + ":" + port
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}
