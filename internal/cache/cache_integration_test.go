//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:6-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, fmt.Sprintf("redis://%s:%s/0", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisCache_TTLSetOnlyOnCreate(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	c := NewRedisCache(client, time.Minute, testutil.DiscardLogger())
	barberID := uuid.New()

	c.Set(ctx, barberID, "2026-06-02:a", []byte("1"))
	got, ok := c.Get(ctx, barberID, "2026-06-02:a")
	require.True(t, ok)
	assert.Equal(t, []byte("1"), got)

	// encurta o TTL; uma gravação nova não pode renovar o hash
	require.NoError(t, client.PExpire(ctx, key(barberID), 2*time.Second).Err())
	c.Set(ctx, barberID, "2026-06-03:a", []byte("2"))

	ttl, err := client.PTTL(ctx, key(barberID)).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 2*time.Second)
	assert.Greater(t, ttl, time.Duration(0))

	c.Invalidate(ctx, barberID)
	_, ok = c.Get(ctx, barberID, "2026-06-03:a")
	assert.False(t, ok)

	// depois de invalidar, o próximo Set volta a definir o TTL
	c.Set(ctx, barberID, "2026-06-04:a", []byte("3"))
	ttl, err = client.PTTL(ctx, key(barberID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
}
