package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaidya/internal/domain"
)

type mockRedisModuleClient struct {
	getVal string
	getErr error

	lastGetKey string
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	evalResult int64
	evalErr    error
}

func (m *mockRedisModuleClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.lastGetKey = key
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	cmd.SetVal(m.getVal)
	return cmd
}

func (m *mockRedisModuleClient) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.evalErr != nil {
		cmd.SetErr(m.evalErr)
		return cmd
	}
	cmd.SetVal(m.evalResult)
	return cmd
}

func newTestRedisRepo(client redisModuleClient, ttl time.Duration) *RedisModuleRepository {
	return &RedisModuleRepository{client: client, ttl: ttl, prefix: "therapy:module:"}
}

func TestRedisModuleRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key maps to not found", func(t *testing.T) {
		mock := &mockRedisModuleClient{getErr: redis.Nil}
		_, err := newTestRedisRepo(mock, 0).Get(ctx, "bk-1")
		assert.ErrorIs(t, err, domain.ErrModuleNotFound)
		assert.Equal(t, "therapy:module:bk-1", mock.lastGetKey)
	})

	t.Run("decodes stored json", func(t *testing.T) {
		m := sampleModule("bk-1")
		m.Version = 3
		raw, err := json.Marshal(m)
		require.NoError(t, err)

		got, err := newTestRedisRepo(&mockRedisModuleClient{getVal: string(raw)}, 0).Get(ctx, "bk-1")
		require.NoError(t, err)
		assert.Equal(t, 3, got.Version)
		assert.Equal(t, m.Sections, got.Sections)
	})

	t.Run("redis error is propagated", func(t *testing.T) {
		_, err := newTestRedisRepo(&mockRedisModuleClient{getErr: errors.New("redis down")}, 0).Get(ctx, "bk-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrModuleNotFound)
	})
}

func TestRedisModuleRepository_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("stores next version with ttl", func(t *testing.T) {
		mock := &mockRedisModuleClient{evalResult: 1}
		m := sampleModule("bk-2")
		m.Version = 4

		stored, err := newTestRedisRepo(mock, 2*time.Hour).Put(ctx, m.Key(), m)
		require.NoError(t, err)
		assert.Equal(t, 5, stored.Version)
		assert.Equal(t, redisModulePutScript, mock.lastScript)
		assert.Equal(t, []string{"therapy:module:bk-2"}, mock.lastKeys)
		require.Len(t, mock.lastArgs, 3)
		assert.Equal(t, 4, mock.lastArgs[0])
		assert.Equal(t, int64(2*time.Hour/time.Millisecond), mock.lastArgs[2])

		var payload domain.TherapyModule
		require.NoError(t, json.Unmarshal([]byte(mock.lastArgs[1].(string)), &payload))
		assert.Equal(t, 5, payload.Version)
	})

	t.Run("script rejection is a version conflict", func(t *testing.T) {
		mock := &mockRedisModuleClient{evalResult: 0}
		_, err := newTestRedisRepo(mock, 0).Put(ctx, "bk-2", sampleModule("bk-2"))
		assert.ErrorIs(t, err, domain.ErrModuleVersionConflict)
		assert.Equal(t, int64(0), mock.lastArgs[2])
	})

	t.Run("redis error is propagated", func(t *testing.T) {
		_, err := newTestRedisRepo(&mockRedisModuleClient{evalErr: errors.New("boom")}, 0).Put(ctx, "bk-2", sampleModule("bk-2"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrModuleVersionConflict)
	})
}
