package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"vaidya/internal/domain"
)

// redisModulePutScript escribe el modulo solo si la version guardada coincide con ARGV[1].
// Sin registro previo solo se acepta la version 0.
const redisModulePutScript = `
local current = redis.call("GET", KEYS[1])
local expected = tonumber(ARGV[1])
if current then
  local stored = cjson.decode(current)
  if tonumber(stored["version"]) ~= expected then
    return 0
  end
elseif expected ~= 0 then
  return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
  redis.call("SET", KEYS[1], ARGV[2], "PX", ttl)
else
  redis.call("SET", KEYS[1], ARGV[2])
end
return 1
`

type redisModuleClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisModuleRepository guarda cada modulo como JSON bajo "therapy:module:<key>".
type RedisModuleRepository struct {
	client redisModuleClient
	ttl    time.Duration
	prefix string
}

// NewRedisModuleRepository crea el repositorio; ttl <= 0 desactiva la expiracion.
func NewRedisModuleRepository(client *redis.Client, ttl time.Duration) *RedisModuleRepository {
	if client == nil {
		return nil
	}
	return &RedisModuleRepository{
		client: client,
		ttl:    ttl,
		prefix: "therapy:module:",
	}
}

func (r *RedisModuleRepository) redisKey(key string) string {
	return r.prefix + strings.TrimSpace(key)
}

func (r *RedisModuleRepository) Get(ctx context.Context, key string) (domain.TherapyModule, error) {
	raw, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.TherapyModule{}, domain.ErrModuleNotFound
	}
	if err != nil {
		return domain.TherapyModule{}, err
	}
	var m domain.TherapyModule
	if err := json.Unmarshal(raw, &m); err != nil {
		return domain.TherapyModule{}, fmt.Errorf("decode module: %w", err)
	}
	return m, nil
}

func (r *RedisModuleRepository) Put(ctx context.Context, key string, module domain.TherapyModule) (domain.TherapyModule, error) {
	stored := module.Clone()
	stored.Version = module.Version + 1
	payload, err := json.Marshal(stored)
	if err != nil {
		return domain.TherapyModule{}, fmt.Errorf("encode module: %w", err)
	}

	var ttlMillis int64
	if r.ttl > 0 {
		ttlMillis = r.ttl.Milliseconds()
	}
	ok, err := r.client.Eval(ctx, redisModulePutScript, []string{r.redisKey(key)},
		module.Version, string(payload), ttlMillis,
	).Int()
	if err != nil {
		return domain.TherapyModule{}, err
	}
	if ok != 1 {
		return domain.TherapyModule{}, domain.ErrModuleVersionConflict
	}
	return stored, nil
}
