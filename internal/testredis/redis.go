// Package testredis starts a throwaway redis server for integration tests.
package testredis

import (
	"context"
	"fmt"
	"testing"

	"github.com/pageza/recipebox/backend/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRedis wraps a redis container and a connected client
type TestRedis struct {
	Client    *redis.Client
	Config    *config.Config
	Container testcontainers.Container
}

// Close cleans up the client and the container
func (tr *TestRedis) Close() error {
	if tr.Client != nil {
		_ = tr.Client.Close()
	}
	if tr.Container != nil {
		return tr.Container.Terminate(context.Background())
	}
	return nil
}

// Setup starts redis and returns a config pointing at it. The container is
// terminated when the test finishes.
func Setup(t *testing.T) *TestRedis {
	t.Helper()

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Ready to accept connections"),
			wait.ForListeningPort("6379/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	cfg := config.Defaults()
	cfg.Environment = config.Test
	cfg.RedisHost = host
	cfg.RedisPort = port.Port()

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, client.Ping(ctx).Err())

	tr := &TestRedis{Client: client, Config: cfg, Container: container}
	t.Cleanup(func() {
		if err := tr.Close(); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})
	return tr
}

// Flush removes every key so tests sharing a container stay isolated
func (tr *TestRedis) Flush(ctx context.Context) error {
	return tr.Client.FlushAll(ctx).Err()
}
