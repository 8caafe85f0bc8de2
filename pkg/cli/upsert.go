package cli

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gdstation/pkg/cli/config"
	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
	"github.com/m-mizutani/gdstation/pkg/infra"
	"github.com/m-mizutani/gdstation/pkg/repository/memory"
	"github.com/m-mizutani/gdstation/pkg/usecase"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

func upsertCommand() *cli.Command {
	var (
		input  string
		dryRun bool

		station  config.Station
		upsert   config.Upsert
		bigQuery config.BigQuery
		sentry   config.Sentry
	)

	return &cli.Command{
		Name:    "upsert",
		Aliases: []string{"u"},
		Usage:   "Upsert a single finding event read from a file or stdin",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "Path to the finding event JSON, '-' for stdin",
				Value:       "-",
				Destination: &input,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Write into an in-memory store instead of Station",
				Sources:     cli.EnvVars("GDSTATION_DRY_RUN"),
				Destination: &dryRun,
			},
		}, station.Flags(), upsert.Flags(), bigQuery.Flags(), sentry.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Debug("starting upsert",
				slog.String("Input", input),
				slog.Bool("DryRun", dryRun),
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

			var stationClient interfaces.Station
			if dryRun {
				stationClient = memory.New(memory.WithPermissions(memory.FullPermissions(upsert.EnclaveID())...))
			} else {
				client, err := station.NewClient(ctx)
				if err != nil {
					return err
				}
				stationClient = client
			}

			uc, err := newUseCase(ctx, stationClient, &upsert, &bigQuery, false)
			if err != nil {
				return err
			}

			finding, err := usecase.LoadFindingFromFile(ctx, input)
			if err != nil {
				return err
			}

			report, err := uc.HandleFinding(ctx, finding)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return goerr.Wrap(err, "failed to write report")
			}
			return nil
		},
	}
}

// newUseCase wires clients and options shared by all commands. With
// prefetch, enclave permissions are read once here instead of on every upsert.
func newUseCase(ctx context.Context, stationClient interfaces.Station, upsert *config.Upsert, bigQuery *config.BigQuery, prefetch bool) (*usecase.UseCase, error) {
	infraOptions := []infra.Option{
		infra.WithStation(stationClient),
	}

	if bqClient, err := bigQuery.NewClient(ctx); err != nil {
		return nil, err
	} else if bqClient != nil {
		infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
	}

	options := upsert.Options()
	if prefetch {
		perms, err := stationClient.GetEnclavePermissions(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch enclave permissions")
		}
		logging.From(ctx).Info("enclave permissions loaded", slog.Int("enclaves", len(perms)))
		options = append(options, usecase.WithPermissions(perms))
	}

	return usecase.New(infra.New(infraOptions...), options...), nil
}
