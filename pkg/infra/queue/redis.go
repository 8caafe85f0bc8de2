package queue

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"

	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
)

const DefaultBlockTimeout = 5 * time.Second

// Redis pops finding events from a Redis list.
type Redis struct {
	client       *redis.Client
	key          string
	blockTimeout time.Duration
}

var _ interfaces.FindingQueue = (*Redis)(nil)

type Option func(*Redis)

func WithBlockTimeout(d time.Duration) Option {
	return func(x *Redis) {
		x.blockTimeout = d
	}
}

// NewRedis creates a queue reading the list at key.
func NewRedis(opts *redis.Options, key string, options ...Option) (*Redis, error) {
	if key == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "redis key is required")
	}
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:6379"
	}

	x := &Redis{
		client:       redis.NewClient(opts),
		key:          key,
		blockTimeout: DefaultBlockTimeout,
	}
	for _, opt := range options {
		opt(x)
	}
	return x, nil
}

// Ping checks the connection.
func (x *Redis) Ping(ctx context.Context) error {
	if err := x.client.Ping(ctx).Err(); err != nil {
		return goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", x.client.Options().Addr))
	}
	return nil
}

// Pop implements interfaces.FindingQueue.
func (x *Redis) Pop(ctx context.Context) ([]byte, error) {
	res, err := x.client.BLPop(ctx, x.blockTimeout, x.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to pop finding from redis", goerr.V("key", x.key))
	}
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}

// Push appends a finding event to the list.
func (x *Redis) Push(ctx context.Context, data []byte) error {
	if err := x.client.RPush(ctx, x.key, data).Err(); err != nil {
		return goerr.Wrap(err, "failed to push finding to redis", goerr.V("key", x.key))
	}
	return nil
}

func (x *Redis) Close() error {
	return x.client.Close()
}
