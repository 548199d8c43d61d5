package agentstats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/servicekit/pkg/useragent"
)

// RedisConfig configures the Redis connection used by RedisStore.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL"`                                      // ConnectionURL in the form "redis://:password@localhost:6379/0". Empty disables Redis.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`            // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`           // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`         // ConnectTimeout bounds all attempts together.
	Key            string        `env:"AGENT_STATS_KEY" envDefault:"agentstats:primary"` // Key is the hash holding the counters.
}

// Connect dials Redis, retrying until it answers PING, the attempts are
// exhausted or the connect timeout expires.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	attempts := max(cfg.RetryAttempts, 1)
	for attempt := range attempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, ErrRedisNotReady
}

// Healthcheck returns a readiness probe that pings client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// RedisStore implements Store with a single Redis hash, so counters are
// shared by every replica of the service.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	limit  int
}

// recordScript increments a counter unless the field is new and the hash
// already holds ARGV[2] fields, in which case it returns -1.
var recordScript = redis.NewScript(`
local limit = tonumber(ARGV[2])
if limit > 0 and redis.call('HEXISTS', KEYS[1], ARGV[1]) == 0 and redis.call('HLEN', KEYS[1]) >= limit then
	return -1
end
return redis.call('HINCRBY', KEYS[1], ARGV[1], 1)
`)

// NewRedisStore returns a store keeping counters in the hash named key.
func NewRedisStore(client redis.UniversalClient, key string, opts ...Option) *RedisStore {
	if key == "" {
		key = "agentstats:primary"
	}
	return &RedisStore{client: client, key: key, limit: applyOptions(opts).limit}
}

func (s *RedisStore) Record(ctx context.Context, ua useragent.UserAgent) error {
	n, err := recordScript.Run(ctx, s.client, []string{s.key}, key(ua), s.limit).Int64()
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if n < 0 {
		return ErrTooManyAgents
	}
	return nil
}

func (s *RedisStore) Snapshot(ctx context.Context) ([]Entry, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	entries := make([]Entry, 0, len(raw))
	for agent, value := range raw {
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, errors.Join(ErrStoreFailure, fmt.Errorf("counter %q: %w", agent, err))
		}
		entries = append(entries, Entry{Agent: agent, Count: count})
	}
	sortEntries(entries)
	return entries, nil
}

func (s *RedisStore) Reset(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}
