package health

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping() error { return nil }

type failPinger struct{}

func (failPinger) Ping() error { return errors.New("connection refused") }

func testRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb
}

func TestCollect_AllConnected(t *testing.T) {
	result := Collect(context.Background(), testRedis(t), okPinger{})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
}

func TestCollect_DatabaseDown(t *testing.T) {
	result := Collect(context.Background(), testRedis(t), failPinger{})
	assert.Equal(t, "degraded", result.Status)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
}

func TestCollect_NilDependencies(t *testing.T) {
	result := Collect(context.Background(), nil, nil)
	assert.Equal(t, "degraded", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["redis"].Status)
}
