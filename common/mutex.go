package common

import (
  "context"
  "time"

  "github.com/go-redis/redis/v8"
  "github.com/rs/xid"
)

var (
  unlockScript = redis.NewScript(`
  if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
  else
    return 0
  end
  `)
  refreshScript = redis.NewScript(`
  if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("PEXPIRE", KEYS[1], ARGV[2])
  else
    return 0
  end
  `)
)

type Mutex struct {
  rdb   *redis.Client
  ctx   context.Context
  key   string
  value string
}

func NewMutex(
  rdb *redis.Client,
  ctx context.Context,
  key string,
) *Mutex {
  return &Mutex{
    rdb:   rdb,
    ctx:   ctx,
    key:   key,
    value: xid.New().String(),
  }
}

func (m *Mutex) Lock(ttl time.Duration) bool {
  result, err := m.rdb.SetNX(
    m.ctx,
    m.key,
    m.value,
    ttl,
  ).Result()
  if err != nil {
    return false
  }
  return result
}

// Refresh extends the lease while this holder still owns it.
func (m *Mutex) Refresh(ttl time.Duration) bool {
  result, err := refreshScript.Run(m.ctx, m.rdb, []string{m.key}, m.value, ttl.Milliseconds()).Int()
  if err != nil {
    return false
  }
  return result == 1
}

func (m *Mutex) Unlock() {
  unlockScript.Run(context.Background(), m.rdb, []string{m.key}, m.value).Result()
}
