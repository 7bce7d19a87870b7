package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/errs"
)

// AvailabilityCache guarda respostas de disponibilidade num hash por barbeiro,
// de modo que qualquer mudança na agenda invalida tudo com um único DEL.
type AvailabilityCache interface {
	Get(ctx context.Context, barberID uuid.UUID, field string) ([]byte, bool)
	Set(ctx context.Context, barberID uuid.UUID, field string, value []byte)
	Invalidate(ctx context.Context, barberID uuid.UUID)
}

func key(barberID uuid.UUID) string {
	return "availability:" + barberID.String()
}

// ======================================================
// REDIS
// ======================================================

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisClient conecta e faz PING.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errs.Wrap(err, "parse redis url")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "redis ping")
	}
	return client, nil
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, barberID uuid.UUID, field string) ([]byte, bool) {
	val, err := c.client.HGet(ctx, key(barberID), field).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("availability cache get failed", "error", err)
		}
		return nil, false
	}
	return val, true
}

// setField grava o campo e só define o TTL quando o hash ainda não tem um,
// para que gravações novas não estendam a vida das antigas.
var setField = redis.NewScript(`
redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[3])
end
return 1
`)

func (c *RedisCache) Set(ctx context.Context, barberID uuid.UUID, field string, value []byte) {
	err := setField.Run(ctx, c.client, []string{key(barberID)}, field, value, c.ttl.Milliseconds()).Err()
	if err != nil {
		c.logger.Warn("availability cache set failed", "error", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, barberID uuid.UUID) {
	if err := c.client.Del(ctx, key(barberID)).Err(); err != nil {
		c.logger.Warn("availability cache invalidate failed", "error", err)
	}
}

// ======================================================
// NOOP
// ======================================================

type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID, string) ([]byte, bool) { return nil, false }
func (Noop) Set(context.Context, uuid.UUID, string, []byte)        {}
func (Noop) Invalidate(context.Context, uuid.UUID)                 {}

var (
	_ AvailabilityCache = (*RedisCache)(nil)
	_ AvailabilityCache = Noop{}
)
