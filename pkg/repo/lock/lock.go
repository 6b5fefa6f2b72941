package lock

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	r "github.com/redis/go-redis/v9"
	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/repo"
)

type localImpl struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocal serialises writers inside one process.
func NewLocal() repo.Locker {
	return &localImpl{slots: make(map[string]chan struct{})}
}

func (l *localImpl) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[key] = s
	}
	return s
}

func (l *localImpl) Lock(ctx context.Context, key string) (func(), error) {
	s := l.slot(key)
	select {
	case s <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-s }) }, nil
	case <-ctx.Done():
		return nil, code.LockErr.WithErr(ctx.Err())
	}
}

// release only deletes the key while it still holds our token, so an
// expired lock taken over by another replica is left alone.
var release = r.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type redisImpl struct {
	client *r.Client
	ttl    time.Duration
	retry  time.Duration
}

// NewRedis serialises writers across processes sharing one redis.
func NewRedis(client *r.Client, ttl time.Duration) repo.Locker {
	return &redisImpl{client: client, ttl: ttl, retry: 50 * time.Millisecond}
}

func (l *redisImpl) Lock(ctx context.Context, key string) (func(), error) {
	token, err := uuid.NewV4()
	if err != nil {
		return nil, code.LockErr.WithErr(err)
	}

	for {
		ok, err := l.client.SetNX(ctx, key, token.String(), l.ttl).Result()
		if err != nil {
			logger.Errorf(ctx, "redis lock %s err: %+v", key, err)
			return nil, code.LockErr.WithErr(err)
		}
		if ok {
			break
		}
		select {
		case <-time.After(l.retry):
		case <-ctx.Done():
			return nil, code.LockErr.WithErr(ctx.Err())
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := release.Run(context.Background(), l.client, []string{key}, token.String()).Err(); err != nil {
				logger.Errorf(ctx, "redis unlock %s err: %+v", key, err)
			}
		})
	}, nil
}
