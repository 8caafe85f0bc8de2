package config

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gdstation/pkg/infra/queue"
)

type Redis struct {
	addr         string
	password     string `masq:"secret"`
	db           int64
	key          string
	blockTimeout time.Duration
}

func (x *Redis) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address",
			Category:    "Redis",
			Value:       "127.0.0.1:6379",
			Destination: &x.addr,
			Sources:     cli.EnvVars("GDSTATION_REDIS_ADDR"),
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Category:    "Redis",
			Destination: &x.password,
			Sources:     cli.EnvVars("GDSTATION_REDIS_PASSWORD"),
		},
		&cli.Int64Flag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Category:    "Redis",
			Destination: &x.db,
			Sources:     cli.EnvVars("GDSTATION_REDIS_DB"),
		},
		&cli.StringFlag{
			Name:        "redis-key",
			Usage:       "Redis list holding finding events",
			Category:    "Redis",
			Value:       "gdstation:findings",
			Destination: &x.key,
			Sources:     cli.EnvVars("GDSTATION_REDIS_KEY"),
		},
		&cli.DurationFlag{
			Name:        "redis-block-timeout",
			Usage:       "How long a single pop blocks",
			Category:    "Redis",
			Value:       queue.DefaultBlockTimeout,
			Destination: &x.blockTimeout,
			Sources:     cli.EnvVars("GDSTATION_REDIS_BLOCK_TIMEOUT"),
		},
	}
}

func (x *Redis) NewQueue() (*queue.Redis, error) {
	return queue.NewRedis(&redis.Options{
		Addr:     x.addr,
		Password: x.password,
		DB:       int(x.db),
	}, x.key, queue.WithBlockTimeout(x.blockTimeout))
}

func (x Redis) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Addr", x.addr),
		slog.Int("Password.len", len(x.password)),
		slog.Int64("DB", x.db),
		slog.String("Key", x.key),
		slog.Duration("BlockTimeout", x.blockTimeout),
	)
}
