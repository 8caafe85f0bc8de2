package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gdstation/pkg/cli/config"
	"github.com/m-mizutani/gdstation/pkg/controller/queue"
	"github.com/m-mizutani/gdstation/pkg/utils/errutil"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

func consumeCommand() *cli.Command {
	var (
		redis    config.Redis
		station  config.Station
		upsert   config.Upsert
		bigQuery config.BigQuery
		sentry   config.Sentry
	)

	return &cli.Command{
		Name:    "consume",
		Aliases: []string{"c"},
		Usage:   "Upsert finding events popped from a Redis list",
		Flags: slice.Flatten(
			redis.Flags(),
			station.Flags(),
			upsert.Flags(),
			bigQuery.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting consume",
				slog.Any("Redis", redis),
				slog.Any("Station", station),
				slog.Any("Upsert", upsert),
				slog.Any("BigQuery", bigQuery),
				slog.Any("Sentry", sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}
			if err := upsert.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			q, err := redis.NewQueue()
			if err != nil {
				return err
			}
			defer func() {
				if err := q.Close(); err != nil {
					errutil.HandleError(ctx, "failed to close redis client", err)
				}
			}()
			if err := q.Ping(ctx); err != nil {
				return err
			}

			stationClient, err := station.NewClient(ctx)
			if err != nil {
				return err
			}
			uc, err := newUseCase(ctx, stationClient, &upsert, &bigQuery, true)
			if err != nil {
				return err
			}

			return queue.New(q, uc).Run(ctx)
		},
	}
}
