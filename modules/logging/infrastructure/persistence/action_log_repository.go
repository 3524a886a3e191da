package persistence

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/ati-intranet/portal/modules/logging/domain/entities/actionlog"
)

const redisKey = "portal:action_logs"

// NewActionLogRepository builds the repository named by storage: memory or
// redis. Both keep at most capacity entries, dropping the oldest.
func NewActionLogRepository(storage, redisURL string, capacity int) (actionlog.Repository, error) {
	switch storage {
	case "", "memory":
		return NewMemoryActionLogRepository(capacity), nil
	case "redis":
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			opts = &redis.Options{Addr: redisURL}
		}
		return NewRedisActionLogRepository(redis.NewClient(opts), capacity), nil
	default:
		return nil, errors.Errorf("unknown action log storage %q", storage)
	}
}

// MemoryActionLogRepository is a ring of the latest entries held in process.
type MemoryActionLogRepository struct {
	mu       sync.RWMutex
	capacity int
	entries  []*actionlog.ActionLog // oldest first
}

func NewMemoryActionLogRepository(capacity int) *MemoryActionLogRepository {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryActionLogRepository{capacity: capacity}
}

func (r *MemoryActionLogRepository) newestFirst() []*actionlog.ActionLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*actionlog.ActionLog, len(r.entries))
	for i, e := range r.entries {
		out[len(r.entries)-1-i] = e
	}
	return out
}

func (r *MemoryActionLogRepository) List(_ context.Context, params *actionlog.FindParams) ([]*actionlog.ActionLog, error) {
	logs, _ := params.Page(r.newestFirst())
	return logs, nil
}

func (r *MemoryActionLogRepository) Count(_ context.Context, params *actionlog.FindParams) (int64, error) {
	_, total := params.Page(r.newestFirst())
	return total, nil
}

func (r *MemoryActionLogRepository) Create(_ context.Context, log *actionlog.ActionLog) error {
	if log == nil {
		return errors.New("action log is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, log)
	if over := len(r.entries) - r.capacity; over > 0 {
		r.entries = append([]*actionlog.ActionLog(nil), r.entries[over:]...)
	}
	return nil
}

// RedisActionLogRepository keeps entries as JSON in a capped redis list,
// newest at the head, so every portal replica sees the same log.
type RedisActionLogRepository struct {
	client   *redis.Client
	key      string
	capacity int
}

func NewRedisActionLogRepository(client *redis.Client, capacity int) *RedisActionLogRepository {
	if capacity <= 0 {
		capacity = 1
	}
	return &RedisActionLogRepository{client: client, key: redisKey, capacity: capacity}
}

func (r *RedisActionLogRepository) all(ctx context.Context) ([]*actionlog.ActionLog, error) {
	raw, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "redis read action logs")
	}
	return decode(raw), nil
}

func (r *RedisActionLogRepository) List(ctx context.Context, params *actionlog.FindParams) ([]*actionlog.ActionLog, error) {
	logs, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	page, _ := params.Page(logs)
	return page, nil
}

func (r *RedisActionLogRepository) Count(ctx context.Context, params *actionlog.FindParams) (int64, error) {
	logs, err := r.all(ctx)
	if err != nil {
		return 0, err
	}
	_, total := params.Page(logs)
	return total, nil
}

func (r *RedisActionLogRepository) Create(ctx context.Context, log *actionlog.ActionLog) error {
	if log == nil {
		return errors.New("action log is required")
	}
	value, err := json.Marshal(log)
	if err != nil {
		return errors.Wrap(err, "encode action log")
	}
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, value)
	pipe.LTrim(ctx, r.key, 0, int64(r.capacity-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "redis write action log")
	}
	return nil
}

// decode skips entries that no longer parse rather than hiding the whole log.
func decode(raw []string) []*actionlog.ActionLog {
	out := make([]*actionlog.ActionLog, 0, len(raw))
	for _, s := range raw {
		l := &actionlog.ActionLog{}
		if err := json.Unmarshal([]byte(s), l); err != nil {
			continue
		}
		out = append(out, l)
	}
	return out
}
