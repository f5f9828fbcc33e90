package redis

import (
	"context"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const monitorInterval = 5 * time.Second

// RedisProvider wraps the client with a default TTL for cached feeds
// and sessions, command logging, and a reconnect monitor. Callers
// treat a nil provider as cache-disabled, so every consumer must
// nil-check before use.
type RedisProvider struct {
	Client *redis.Client
	URL    string
	logger *zap.SugaredLogger
	ttl    time.Duration
}

func NewRedisProvider(redisURL string, logger *zap.Logger, ttl time.Duration) *RedisProvider {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		// Plain host:port, common in docker-compose setups.
		opts = &redis.Options{Addr: redisURL}
	}
	opts.MaxRetries = 3
	opts.MinRetryBackoff = 100 * time.Millisecond
	opts.MaxRetryBackoff = 500 * time.Millisecond

	p := &RedisProvider{
		Client: redis.NewClient(opts),
		URL:    redisURL,
		logger: logger.Sugar(),
		ttl:    ttl,
	}
	p.Client.AddHook(&commandLogHook{logger: p.logger})

	go p.monitorConnection(context.Background())

	if err := p.Client.Ping(context.Background()).Err(); err != nil {
		p.logger.Errorw("Redis unreachable at startup", "url", redisURL, "error", err)
	} else {
		p.logger.Infow("Redis connected", "url", redisURL, "default_ttl", ttl.String())
	}

	return p
}

// SetWithDefaultTTL stores a value, falling back to the configured
// cache TTL when the caller passes a non-positive one.
func (r *RedisProvider) SetWithDefaultTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.Client.Set(ctx, key, value, ttl)
}

func (r *RedisProvider) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.Client.Get(ctx, key)
}

func (r *RedisProvider) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.Client.Del(ctx, keys...)
}

// Scan is the invalidation primitive; KEYS is deliberately not exposed.
func (r *RedisProvider) Scan(ctx context.Context, cursor uint64, pattern string, count int64) *redis.ScanCmd {
	return r.Client.Scan(ctx, cursor, pattern, count)
}

func (r *RedisProvider) monitorConnection(ctx context.Context) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	connected := r.Client.Ping(ctx).Err() == nil
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := r.Client.Ping(ctx).Err()
			switch {
			case err != nil && connected:
				r.logger.Errorw("Redis connection lost", "url", r.URL, "error", err)
				connected = false
			case err == nil && !connected:
				r.logger.Infow("Redis connection restored", "url", r.URL)
				connected = true
			}
		}
	}
}

type commandLogHook struct {
	logger *zap.SugaredLogger
}

func (h *commandLogHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.logger.Errorw("Redis dial failed", "addr", addr, "error", err)
		}
		return conn, err
	}
}

func (h *commandLogHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.log(cmd, time.Since(start), err)
		return err
	}
}

func (h *commandLogHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start)
		for _, cmd := range cmds {
			h.log(cmd, elapsed, err)
		}
		return err
	}
}

func (h *commandLogHook) log(cmd redis.Cmder, elapsed time.Duration, err error) {
	// The monitor pings every few seconds; logging them drowns everything.
	if cmd.Name() == "ping" && err == nil {
		return
	}

	fields := []interface{}{
		"command", cmd.Name(),
		"duration_ms", elapsed.Milliseconds(),
	}
	if err != nil {
		h.logger.Errorw("Redis command failed", append(fields, "error", err)...)
		return
	}
	h.logger.Debugw("Redis command", fields...)
}
