package database

import (
	"context"
	"testing"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/testredis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisOptionsFromHost(t *testing.T) {
	cfg := config.Defaults()
	cfg.RedisHost = "cache"
	cfg.RedisPort = "6380"
	cfg.RedisPassword = "pw"
	cfg.RedisDB = 2

	opts, err := RedisOptions(cfg)
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestRedisOptionsURLWins(t *testing.T) {
	cfg := config.Defaults()
	cfg.RedisHost = "ignored"
	cfg.RedisPort = "1"
	cfg.RedisURL = "redis://:secret@redis.internal:6379/3"

	opts, err := RedisOptions(cfg)
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)
}

func TestRedisOptionsBadURL(t *testing.T) {
	cfg := config.Defaults()
	cfg.RedisURL = "http://not-redis"

	_, err := RedisOptions(cfg)
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}

func TestNewRedisClientUnreachable(t *testing.T) {
	cfg := config.Defaults()
	cfg.RedisHost = "127.0.0.1"
	cfg.RedisPort = "1"

	_, err := NewRedisClient(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}

func TestNewRedisClient(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	tr := testredis.Setup(t)

	client, err := NewRedisClient(context.Background(), tr.Config)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.Equal(t, "v", client.Get(context.Background(), "k").Val())
}
